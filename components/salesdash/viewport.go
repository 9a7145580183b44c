package salesdash

import "strings"

// NarrowBreakpoint is the viewport width (px) below which the layout is narrow.
const NarrowBreakpoint = 768

// Viewport classifies the hosting surface.
type Viewport interface {
	IsNarrow() bool
}

// StaticViewport is a fixed classification.
type StaticViewport bool

// IsNarrow reports the fixed value.
func (v StaticViewport) IsNarrow() bool { return bool(v) }

// WidthViewport classifies by width in pixels (or columns for terminals, with
// a matching breakpoint). A zero width is treated as wide.
type WidthViewport struct {
	Width      int
	Breakpoint int
}

// IsNarrow reports whether Width is below the breakpoint.
func (v WidthViewport) IsNarrow() bool {
	if v.Width <= 0 {
		return false
	}
	bp := v.Breakpoint
	if bp <= 0 {
		bp = NarrowBreakpoint
	}
	return v.Width < bp
}

// SidebarMode is how the sidebar is presented.
type SidebarMode string

const (
	SidebarPermanent SidebarMode = "permanent"
	SidebarOverlay   SidebarMode = "overlay"
)

// SidebarModeFor picks the overlay presentation on narrow viewports.
func SidebarModeFor(v Viewport) SidebarMode {
	if v != nil && v.IsNarrow() {
		return SidebarOverlay
	}
	return SidebarPermanent
}

// SidebarVisible reports whether the sidebar is shown: always on wide
// viewports, only when open on narrow ones.
func SidebarVisible(state ViewState, v Viewport) bool {
	if SidebarModeFor(v) == SidebarPermanent {
		return true
	}
	return state.SidebarOpen
}

func normalizeViewport(v Viewport) Viewport {
	if v == nil {
		return StaticViewport(false)
	}
	return v
}

var mobileAgentMarkers = []string{"mobi", "android", "iphone", "ipod", "windows phone"}

// IsMobileUserAgent is a coarse narrow-layout hint from a User-Agent header.
func IsMobileUserAgent(ua string) bool {
	ua = strings.ToLower(ua)
	for _, marker := range mobileAgentMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

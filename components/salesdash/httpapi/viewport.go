package httpapi

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// Request hints used to classify the client.
const (
	ViewportQuery      = "viewport"
	ViewportWidthHint  = "Sec-CH-Viewport-Width"
	ColorSchemeHint    = "Sec-CH-Prefers-Color-Scheme"
	SessionHeader      = "X-Salesdash-Session"
	DefaultCookieName  = "salesdash_session"
	DefaultBasePath    = "/dashboard"
	narrowViewportName = "narrow"
	wideViewportName   = "wide"
)

// ResolveViewport classifies the client from an explicit ?viewport= override,
// the viewport width client hint or, failing both, the User-Agent.
func ResolveViewport(c *fiber.Ctx) salesdash.Viewport {
	switch strings.ToLower(strings.TrimSpace(c.Query(ViewportQuery))) {
	case narrowViewportName:
		return salesdash.StaticViewport(true)
	case wideViewportName:
		return salesdash.StaticViewport(false)
	}
	if hint := strings.TrimSpace(c.Get(ViewportWidthHint)); hint != "" {
		if width, err := strconv.Atoi(hint); err == nil && width > 0 {
			return salesdash.WidthViewport{Width: width}
		}
	}
	return salesdash.StaticViewport(salesdash.IsMobileUserAgent(c.Get(fiber.HeaderUserAgent)))
}

// ResolvePrefersDark reads the colour scheme client hint. It returns nil when
// the client sent none.
func ResolvePrefersDark(c *fiber.Ctx) *bool {
	switch strings.ToLower(strings.Trim(c.Get(ColorSchemeHint), `" `)) {
	case "dark":
		v := true
		return &v
	case "light":
		v := false
		return &v
	}
	return nil
}

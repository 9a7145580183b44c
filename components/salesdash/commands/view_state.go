package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// ToggleThemeCommand flips the session theme.
type ToggleThemeCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(sessions SessionResolver, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ToggleThemeCommand)(nil)

// Execute toggles the theme of the targeted session.
func (c *ToggleThemeCommand) Execute(ctx context.Context, msg SessionInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	state, err := session.Controller.ToggleTheme(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesdash.command.theme_toggle", map[string]any{
		"session_id": session.ID,
		"theme":      string(state.Theme),
	})
	return nil
}

// ToggleSidebarCommand opens or closes the sidebar.
type ToggleSidebarCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewToggleSidebarCommand creates the command.
func NewToggleSidebarCommand(sessions SessionResolver, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ToggleSidebarCommand)(nil)

// Execute flips the sidebar flag.
func (c *ToggleSidebarCommand) Execute(ctx context.Context, msg SessionInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	state, err := session.Controller.ToggleSidebar(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesdash.command.sidebar_toggle", map[string]any{
		"session_id": session.ID,
		"open":       state.SidebarOpen,
	})
	return nil
}

// SetTabInput selects the trend chart tab.
type SetTabInput struct {
	SessionID string `json:"session_id"`
	Tab       string `json:"tab"`
}

// SetTabCommand selects revenue, units or profit.
type SetTabCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewSetTabCommand creates the command.
func NewSetTabCommand(sessions SessionResolver, telemetry Telemetry) *SetTabCommand {
	return &SetTabCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetTabInput] = (*SetTabCommand)(nil)

// Execute sets the active tab. Unknown tabs return salesdash.ErrInvalidTab.
func (c *SetTabCommand) Execute(ctx context.Context, msg SetTabInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	state, err := session.Controller.SetActiveTab(ctx, msg.Tab)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesdash.command.tab_set", map[string]any{
		"session_id": session.ID,
		"tab":        string(state.ActiveTab),
	})
	return nil
}

// SetFiltersInput carries the filter selections to merge. Empty fields keep
// their current value.
type SetFiltersInput struct {
	SessionID string            `json:"session_id"`
	Filters   salesdash.Filters `json:"filters"`
}

// SetFiltersCommand changes the filter selections without applying them.
type SetFiltersCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewSetFiltersCommand creates the command.
func NewSetFiltersCommand(sessions SessionResolver, telemetry Telemetry) *SetFiltersCommand {
	return &SetFiltersCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetFiltersInput] = (*SetFiltersCommand)(nil)

// Execute merges the selections. Unknown options return salesdash.ErrInvalidFilter.
func (c *SetFiltersCommand) Execute(ctx context.Context, msg SetFiltersInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	state, err := session.Controller.SetFilters(ctx, msg.Filters)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesdash.command.filters_set", map[string]any{
		"session_id": session.ID,
		"date_range": string(state.DateRange),
		"region":     string(state.Region),
		"category":   string(state.Category),
	})
	return nil
}

// ApplyFiltersCommand runs the filter apply gesture.
type ApplyFiltersCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewApplyFiltersCommand creates the command.
func NewApplyFiltersCommand(sessions SessionResolver, telemetry Telemetry) *ApplyFiltersCommand {
	return &ApplyFiltersCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*ApplyFiltersCommand)(nil)

// Execute starts the apply. A request arriving while loading is ignored.
func (c *ApplyFiltersCommand) Execute(ctx context.Context, msg SessionInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	started, err := session.Controller.ApplyFilters(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesdash.command.filters_apply", map[string]any{
		"session_id": session.ID,
		"started":    started,
	})
	return nil
}

// RefreshCommand runs the refresh gesture.
type RefreshCommand struct {
	sessions  SessionResolver
	telemetry Telemetry
}

// NewRefreshCommand creates the command.
func NewRefreshCommand(sessions SessionResolver, telemetry Telemetry) *RefreshCommand {
	return &RefreshCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SessionInput] = (*RefreshCommand)(nil)

// Execute starts a refresh. A request arriving while loading is ignored.
func (c *RefreshCommand) Execute(ctx context.Context, msg SessionInput) error {
	session, err := resolve(c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	started, err := session.Controller.Refresh(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "salesdash.command.refresh", map[string]any{
		"session_id": session.ID,
		"started":    started,
	})
	return nil
}

package commands

// Set bundles every command so transports can be wired in one call.
type Set struct {
	ToggleTheme    *ToggleThemeCommand
	ToggleSidebar  *ToggleSidebarCommand
	SetTab         *SetTabCommand
	SetFilters     *SetFiltersCommand
	ApplyFilters   *ApplyFiltersCommand
	Refresh        *RefreshCommand
	ExportData     *ExportDataCommand
	ShareDashboard *ShareDashboardCommand
	DownloadReport *DownloadReportCommand
	CreateAlert    *CreateAlertCommand
	ViewDetails    *ViewDetailsCommand
	Navigate       *NavigateCommand
}

// NewSet builds every command over the same resolver and telemetry sink.
func NewSet(sessions SessionResolver, telemetry Telemetry) Set {
	return Set{
		ToggleTheme:    NewToggleThemeCommand(sessions, telemetry),
		ToggleSidebar:  NewToggleSidebarCommand(sessions, telemetry),
		SetTab:         NewSetTabCommand(sessions, telemetry),
		SetFilters:     NewSetFiltersCommand(sessions, telemetry),
		ApplyFilters:   NewApplyFiltersCommand(sessions, telemetry),
		Refresh:        NewRefreshCommand(sessions, telemetry),
		ExportData:     NewExportDataCommand(sessions, telemetry),
		ShareDashboard: NewShareDashboardCommand(sessions, telemetry),
		DownloadReport: NewDownloadReportCommand(sessions, telemetry),
		CreateAlert:    NewCreateAlertCommand(sessions, telemetry),
		ViewDetails:    NewViewDetailsCommand(sessions, telemetry),
		Navigate:       NewNavigateCommand(sessions, telemetry),
	}
}

package salesdash

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTab is returned when a tab outside revenue/units/profit is requested.
	ErrInvalidTab = errors.New("salesdash: invalid tab")
	// ErrInvalidFilter is returned when a filter selection is not one of the known options.
	ErrInvalidFilter = errors.New("salesdash: invalid filter selection")
)

// Theme is the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Label returns the capitalized theme name used in notifications.
func (t Theme) Label() string {
	if t == ThemeDark {
		return "Dark"
	}
	return "Light"
}

// Tab selects which time-series metric the trend chart shows.
type Tab string

const (
	TabRevenue Tab = "revenue"
	TabUnits   Tab = "units"
	TabProfit  Tab = "profit"
)

// Tabs lists the selectable tabs in display order.
func Tabs() []Tab {
	return []Tab{TabRevenue, TabUnits, TabProfit}
}

// ParseTab validates a tab name.
func ParseTab(value string) (Tab, error) {
	tab := Tab(strings.TrimSpace(value))
	switch tab {
	case TabRevenue, TabUnits, TabProfit:
		return tab, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTab, value)
}

// Title returns the tab trigger label.
func (t Tab) Title() string {
	switch t {
	case TabUnits:
		return "Units Sold"
	case TabProfit:
		return "Profit"
	default:
		return "Revenue"
	}
}

// DateRange is the date range filter selection.
type DateRange string

const (
	DateRangeLast30Days  DateRange = "Last 30 days"
	DateRangeLastQuarter DateRange = "Last Quarter"
	DateRangeYearToDate  DateRange = "Year to Date"
	DateRangeCustom      DateRange = "Custom..."
)

// DateRanges lists the date range options.
func DateRanges() []DateRange {
	return []DateRange{DateRangeLast30Days, DateRangeLastQuarter, DateRangeYearToDate, DateRangeCustom}
}

// Region is the region filter selection.
type Region string

const (
	RegionAll          Region = "All Regions"
	RegionNorthAmerica Region = "North America"
	RegionEurope       Region = "Europe"
	RegionAsiaPacific  Region = "Asia Pacific"
)

// Regions lists the region options.
func Regions() []Region {
	return []Region{RegionAll, RegionNorthAmerica, RegionEurope, RegionAsiaPacific}
}

// Category is the product category filter selection.
type Category string

const (
	CategoryAll         Category = "All Categories"
	CategoryElectronics Category = "Electronics"
	CategorySoftware    Category = "Software"
	CategoryServices    Category = "Services"
)

// Categories lists the category options.
func Categories() []Category {
	return []Category{CategoryAll, CategoryElectronics, CategorySoftware, CategoryServices}
}

// Filters groups the three filter selections.
type Filters struct {
	DateRange DateRange `json:"date_range"`
	Region    Region    `json:"region"`
	Category  Category  `json:"category"`
}

// DefaultFilters returns the first option of every filter.
func DefaultFilters() Filters {
	return Filters{
		DateRange: DateRangeLast30Days,
		Region:    RegionAll,
		Category:  CategoryAll,
	}
}

// Validate checks every selection against its option list. Empty fields are rejected.
func (f Filters) Validate() error {
	if !contains(DateRanges(), f.DateRange) {
		return fmt.Errorf("%w: date range %q", ErrInvalidFilter, f.DateRange)
	}
	if !contains(Regions(), f.Region) {
		return fmt.Errorf("%w: region %q", ErrInvalidFilter, f.Region)
	}
	if !contains(Categories(), f.Category) {
		return fmt.Errorf("%w: category %q", ErrInvalidFilter, f.Category)
	}
	return nil
}

// Merge returns f with the non-empty fields of other applied on top.
func (f Filters) Merge(other Filters) Filters {
	if other.DateRange != "" {
		f.DateRange = other.DateRange
	}
	if other.Region != "" {
		f.Region = other.Region
	}
	if other.Category != "" {
		f.Category = other.Category
	}
	return f
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ViewState is the session-scoped UI state. It is only changed through Reduce.
type ViewState struct {
	Theme          Theme     `json:"theme"`
	SidebarOpen    bool      `json:"sidebar_open"`
	ActiveTab      Tab       `json:"active_tab"`
	DateRange      DateRange `json:"date_range"`
	Region         Region    `json:"region"`
	Category       Category  `json:"category"`
	IsLoading      bool      `json:"is_loading"`
	FiltersApplied bool      `json:"filters_applied"`
}

// InitialViewState derives the startup state from the system colour preference.
func InitialViewState(prefersDark bool) ViewState {
	theme := ThemeLight
	if prefersDark {
		theme = ThemeDark
	}
	filters := DefaultFilters()
	return ViewState{
		Theme:     theme,
		ActiveTab: TabRevenue,
		DateRange: filters.DateRange,
		Region:    filters.Region,
		Category:  filters.Category,
	}
}

// Filters returns the current filter selections.
func (s ViewState) Filters() Filters {
	return Filters{DateRange: s.DateRange, Region: s.Region, Category: s.Category}
}

// ApplyFiltersLabel is the label of the apply button for the given state.
func ApplyFiltersLabel(state ViewState) string {
	switch {
	case state.IsLoading:
		return "Applying..."
	case state.FiltersApplied:
		return "Filters Applied ✓"
	default:
		return "Apply Filters"
	}
}

// RefreshLabel is the label of the refresh button for the given state.
func RefreshLabel(state ViewState) string {
	if state.IsLoading {
		return "Refreshing..."
	}
	return "Refresh"
}

package salesdash

import "math"

// TimeSeriesPoint is one period of the revenue trends chart.
type TimeSeriesPoint struct {
	Period  string  `json:"period" yaml:"period"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
	Profit  float64 `json:"profit" yaml:"profit"`
	Units   float64 `json:"units" yaml:"units"`
}

// Value returns the metric plotted for tab.
func (p TimeSeriesPoint) Value(tab Tab) float64 {
	switch tab {
	case TabUnits:
		return p.Units
	case TabProfit:
		return p.Profit
	default:
		return p.Revenue
	}
}

// ProductRecord is one bar of the product performance chart.
type ProductRecord struct {
	Name   string  `json:"name" yaml:"name"`
	Sales  float64 `json:"sales" yaml:"sales"`
	Target float64 `json:"target" yaml:"target"`
}

// MemberStatus flags a team member's standing.
type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberWarning MemberStatus = "warning"
)

// TeamMemberRecord is one row of the team performance list.
type TeamMemberRecord struct {
	Name   string       `json:"name" yaml:"name"`
	Sales  float64      `json:"sales" yaml:"sales"`
	Leads  float64      `json:"leads" yaml:"leads"`
	Target float64      `json:"target" yaml:"target"`
	Avatar string       `json:"avatar" yaml:"avatar"`
	Status MemberStatus `json:"status" yaml:"status"`
}

// TargetPercent is the displayed percentage of target (unclamped).
func (m TeamMemberRecord) TargetPercent() int {
	return TargetPercent(m.Sales, m.Target)
}

// ProgressWidth is the progress-bar width, capped at 100.
func (m TeamMemberRecord) ProgressWidth() int {
	return ProgressWidth(m.Sales, m.Target)
}

// OnTarget reports whether sales reached the target.
func (m TeamMemberRecord) OnTarget() bool {
	return m.Sales >= m.Target
}

// TargetPercent returns round(sales/target*100). A non-positive target yields 0.
func TargetPercent(sales, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(sales / target * 100))
}

// ProgressWidth returns min(100, TargetPercent(sales, target)).
func ProgressWidth(sales, target float64) int {
	pct := TargetPercent(sales, target)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Trend is the direction of a metric card change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// BreakdownItem is a hover-card line of a metric card.
type BreakdownItem struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// CardAction is the secondary hover-card button of a metric card.
type CardAction struct {
	Kind   string `json:"kind" yaml:"kind"`
	Label  string `json:"label" yaml:"label"`
	Target string `json:"target" yaml:"target"`
}

// Secondary card action kinds.
const (
	CardActionAlert    = "alert"
	CardActionReport   = "report"
	CardActionNavigate = "navigate"
)

// MetricCard is one of the key metric cards at the top of the dashboard.
type MetricCard struct {
	Name           string          `json:"name" yaml:"name"`
	Value          string          `json:"value" yaml:"value"`
	Change         string          `json:"change" yaml:"change"`
	Trend          Trend           `json:"trend" yaml:"trend"`
	BreakdownTitle string          `json:"breakdown_title" yaml:"breakdown_title"`
	Breakdown      []BreakdownItem `json:"breakdown" yaml:"breakdown"`
	Action         CardAction      `json:"action" yaml:"action"`
}

// InsightKind picks the insight accent.
type InsightKind string

const (
	InsightRecommendation InsightKind = "recommendation"
	InsightAlert          InsightKind = "alert"
	InsightOpportunity    InsightKind = "opportunity"
	InsightRecognition    InsightKind = "recognition"
)

// Insight is a canned AI-style insight.
type Insight struct {
	Title string      `json:"title" yaml:"title"`
	Body  string      `json:"body" yaml:"body"`
	Kind  InsightKind `json:"kind" yaml:"kind"`
}

// Dataset groups every fixed collection rendered by the dashboard.
type Dataset struct {
	Series   []TimeSeriesPoint  `json:"series" yaml:"series"`
	Products []ProductRecord    `json:"products" yaml:"products"`
	Team     []TeamMemberRecord `json:"team" yaml:"team"`
	Cards    []MetricCard       `json:"cards" yaml:"cards"`
	Insights []Insight          `json:"insights" yaml:"insights"`
}

// Clone returns a deep copy so callers cannot mutate shared sample data.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Series:   append([]TimeSeriesPoint(nil), d.Series...),
		Products: append([]ProductRecord(nil), d.Products...),
		Team:     append([]TeamMemberRecord(nil), d.Team...),
		Insights: append([]Insight(nil), d.Insights...),
	}
	if d.Cards != nil {
		out.Cards = make([]MetricCard, len(d.Cards))
		for i, card := range d.Cards {
			card.Breakdown = append([]BreakdownItem(nil), card.Breakdown...)
			out.Cards[i] = card
		}
	}
	return out
}

// SampleDataset returns the built-in sample data.
func SampleDataset() Dataset {
	return Dataset{
		Series: []TimeSeriesPoint{
			{Period: "Jan", Revenue: 4000, Profit: 2400, Units: 240},
			{Period: "Feb", Revenue: 3000, Profit: 1398, Units: 210},
			{Period: "Mar", Revenue: 2000, Profit: 9800, Units: 290},
			{Period: "Apr", Revenue: 2780, Profit: 3908, Units: 200},
			{Period: "May", Revenue: 1890, Profit: 4800, Units: 218},
			{Period: "Jun", Revenue: 2390, Profit: 3800, Units: 250},
			{Period: "Jul", Revenue: 3490, Profit: 4300, Units: 210},
		},
		Products: []ProductRecord{
			{Name: "Product A", Sales: 4000, Target: 5000},
			{Name: "Product B", Sales: 3000, Target: 3500},
			{Name: "Product C", Sales: 2000, Target: 2000},
			{Name: "Product D", Sales: 2780, Target: 3000},
			{Name: "Product E", Sales: 1890, Target: 2500},
		},
		Team: []TeamMemberRecord{
			{Name: "Alice", Sales: 56000, Leads: 45, Target: 60000, Avatar: "A", Status: MemberActive},
			{Name: "Bob", Sales: 72000, Leads: 52, Target: 70000, Avatar: "B", Status: MemberActive},
			{Name: "Charlie", Sales: 48000, Leads: 38, Target: 50000, Avatar: "C", Status: MemberWarning},
			{Name: "Diana", Sales: 67000, Leads: 49, Target: 65000, Avatar: "D", Status: MemberActive},
		},
		Cards: []MetricCard{
			{
				Name:           "Total Revenue",
				Value:          "$249,500",
				Change:         "+14% from last month",
				Trend:          TrendUp,
				BreakdownTitle: "Revenue Breakdown",
				Breakdown: []BreakdownItem{
					{Label: "Direct Sales", Value: "$142,500"},
					{Label: "Partner Sales", Value: "$89,750"},
					{Label: "Referrals", Value: "$17,250"},
				},
				Action: CardAction{Kind: CardActionAlert, Label: "Set Alert", Target: "Revenue"},
			},
			{
				Name:           "Avg. Deal Size",
				Value:          "$5,280",
				Change:         "+5% from last month",
				Trend:          TrendUp,
				BreakdownTitle: "Deal Size Insights",
				Breakdown: []BreakdownItem{
					{Label: "Enterprise", Value: "$12,450"},
					{Label: "Mid-market", Value: "$6,320"},
					{Label: "Small Business", Value: "$2,180"},
				},
				Action: CardAction{Kind: CardActionReport, Label: "Report", Target: "Deal Size"},
			},
			{
				Name:           "Products Sold",
				Value:          "1,284",
				Change:         "-2% from last month",
				Trend:          TrendDown,
				BreakdownTitle: "Top Products",
				Breakdown: []BreakdownItem{
					{Label: "Product A", Value: "428 units"},
					{Label: "Product B", Value: "352 units"},
					{Label: "Product C", Value: "298 units"},
				},
				Action: CardAction{Kind: CardActionNavigate, Label: "Inventory", Target: "Inventory"},
			},
		},
		Insights: []Insight{
			{
				Title: "Product Recommendation",
				Body:  "Product C has reached 100% of its target. Consider increasing inventory by 15% for next month.",
				Kind:  InsightRecommendation,
			},
			{
				Title: "Trend Alert",
				Body:  "Sales in the Midwest region have dropped by 12% compared to last month. Schedule a team review.",
				Kind:  InsightAlert,
			},
			{
				Title: "Opportunity Detected",
				Body:  "Customers who purchase Product A are 3x more likely to also purchase Product E. Consider bundling.",
				Kind:  InsightOpportunity,
			},
			{
				Title: "Performance Recognition",
				Body:  "Bob has exceeded targets for 3 consecutive months. Consider a performance incentive.",
				Kind:  InsightRecognition,
			},
		},
	}
}

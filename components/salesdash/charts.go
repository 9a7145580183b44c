package salesdash

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight = "288px"
	trendChartID       = "salesdash-trend"
	productsChartID    = "salesdash-products"
)

// ChartRendererOption customizes a ChartRenderer.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache replaces the default TTL cache. Nil disables caching.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithAssetsHost rewrites the host the ECharts script loads from.
func WithAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// WithChartHeight sets the canvas height, e.g. "320px".
func WithChartHeight(height string) ChartRendererOption {
	return func(r *ChartRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// ChartRenderer renders the revenue trends area chart and the product
// performance bar chart as embeddable HTML.
type ChartRenderer struct {
	cache      RenderCache
	assetsHost string
	height     string
}

// NewChartRenderer builds a renderer backed by a five minute chart cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:  NewChartCache(5 * time.Minute),
		height: defaultChartHeight,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// ChartTheme maps the dashboard theme onto an ECharts theme.
func ChartTheme(theme Theme) string {
	if theme == ThemeDark {
		return types.ThemeChalk
	}
	return types.ThemeWesteros
}

// Render produces both charts for state over ds.
func (r *ChartRenderer) Render(state ViewState, ds Dataset) (ChartsView, error) {
	trend, err := r.Trend(state, ds.Series)
	if err != nil {
		return ChartsView{}, err
	}
	products, err := r.Products(state, ds.Products)
	if err != nil {
		return ChartsView{}, err
	}
	return ChartsView{Trend: trend, Products: products}, nil
}

// Trend renders the active tab's metric as a smoothed area chart.
func (r *ChartRenderer) Trend(state ViewState, series []TimeSeriesPoint) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("salesdash: trend chart needs at least one point")
	}
	theme := ChartTheme(state.Theme)
	tab := state.ActiveTab
	key := chartKey("trend", string(tab), theme, contentHash(series))
	return r.cached(key, func() (string, error) {
		periods := make([]string, len(series))
		points := make([]opts.LineData, len(series))
		for i, p := range series {
			periods[i] = p.Period
			points[i] = opts.LineData{Name: p.Period, Value: p.Value(tab)}
		}
		color := TabColor(tab)

		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(trendChartID, theme, false)...)
		line.SetXAxis(periods)
		line.AddSeries(tab.Title(), points)
		line.SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: color, Opacity: 0.35}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
		return renderChart(line)
	})
}

// Products renders product sales next to their targets.
func (r *ChartRenderer) Products(state ViewState, products []ProductRecord) (string, error) {
	if len(products) == 0 {
		return "", fmt.Errorf("salesdash: product chart needs at least one product")
	}
	theme := ChartTheme(state.Theme)
	key := chartKey("products", theme, contentHash(products))
	return r.cached(key, func() (string, error) {
		names := make([]string, len(products))
		sales := make([]opts.BarData, len(products))
		targets := make([]opts.BarData, len(products))
		for i, p := range products {
			names[i] = p.Name
			sales[i] = opts.BarData{Name: p.Name, Value: p.Sales}
			targets[i] = opts.BarData{Name: p.Name, Value: p.Target}
		}
		targetColor := "#dddddd"
		if state.Theme == ThemeDark {
			targetColor = "#666666"
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(productsChartID, theme, true)...)
		bar.SetXAxis(names)
		bar.AddSeries("sales", sales, charts.WithItemStyleOpts(opts.ItemStyle{Color: TabColor(TabRevenue)}))
		bar.AddSeries("target", targets, charts.WithItemStyleOpts(opts.ItemStyle{Color: targetColor}))
		return renderChart(bar)
	})
}

func (r *ChartRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalOptions(id, theme string, legend bool) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		ChartID: id,
		Theme:   theme,
		Width:   "100%",
		Height:  r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(legend)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

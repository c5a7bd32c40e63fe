package util

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"bikeshare-dashboard/aggregator"
	"bikeshare-dashboard/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const DASHBOARD_PAGE_TITLE = "Capital Bikeshare: Bike-sharing Dashboard"
const EMPTY_CHART_SUBTITLE = "No rides in the selected date range"

// Series colors follow models.RideTypes order.
var rideTypeColors = opts.Colors{"#d62728", "#1f77b4", "#9467bd"}

var seasonColors = opts.Colors{"#2ca02c", "#ff7f0e", "#8c564b", "#17becf"}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var headerTemplate = template.Must(template.New("header").Funcs(template.FuncMap{
	"thousands": FormatThousands,
}).Parse(`
<div style="font-family:sans-serif;margin:16px 32px">
  <h1>{{.Title}}</h1>
  <form method="get" action="/">
    <label>Start <input type="date" name="start" value="{{.Start}}" min="{{.Min}}" max="{{.Max}}"></label>
    <label>End <input type="date" name="end" value="{{.End}}" min="{{.Min}}" max="{{.Max}}"></label>
    <button type="submit">Filter</button>
    <a href="/v1/export.xlsx?start={{.Start}}&end={{.End}}">Download XLSX</a>
  </form>
  <p>
    <strong>Total Rides</strong> {{thousands .Summary.TotalRides}} &middot;
    <strong>Total Casual Rides</strong> {{thousands .Summary.CasualRides}} &middot;
    <strong>Total Registered Rides</strong> {{thousands .Summary.RegisteredRides}}
  </p>
  <hr>
</div>
`))

type headerData struct {
	Title      string
	Start, End string
	Min, Max   string
	Summary    models.Summary
}

// RenderDashboardPage writes the full HTML dashboard for d. bounds limits the
// date pickers to the dataset extent.
func RenderDashboardPage(w io.Writer, d *aggregator.Dashboard, bounds models.DateRange) error {
	page := components.NewPage()
	page.PageTitle = DASHBOARD_PAGE_TITLE
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		RideTypePie(d.Summary),
		HourlyBar(d.Hourly),
		MonthlyLine(d.Monthly),
		WeekdayBar(d.Weekday),
		SeasonalBar(d.Seasonal),
		WeatherBar(d.Weather),
	)
	for _, m := range models.Measures {
		page.AddCharts(ClusterScatter(m, d.Clusters[m]))
	}

	var body bytes.Buffer
	if err := page.Render(&body); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	var header bytes.Buffer
	err := headerTemplate.Execute(&header, headerData{
		Title:   DASHBOARD_PAGE_TITLE,
		Start:   d.Range.Start.Format(models.DateLayout),
		End:     d.Range.End.Format(models.DateLayout),
		Min:     bounds.Start.Format(models.DateLayout),
		Max:     bounds.End.Format(models.DateLayout),
		Summary: d.Summary,
	})
	if err != nil {
		return fmt.Errorf("failed to render header: %w", err)
	}

	html := body.String()
	if i := strings.Index(html, "<body>"); i >= 0 {
		i += len("<body>")
		html = html[:i] + header.String() + html[i:]
	} else {
		html = header.String() + html
	}
	_, err = io.WriteString(w, html)
	return err
}

func globalOpts(title, xName string, empty bool) []charts.GlobalOpts {
	t := opts.Title{Title: title}
	if empty {
		t.Subtitle = EMPTY_CHART_SUBTITLE
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "420px",
		}),
		charts.WithTitleOpts(t),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Rides"}),
	}
}

// groupedBar draws one bar per ride type for every key, side by side.
func groupedBar(title, xName string, labels []string, s aggregator.Series[int]) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title, xName, len(labels) == 0)...)
	bar.SetGlobalOptions(charts.WithColorsOpts(rideTypeColors))
	bar.SetXAxis(labels)
	for _, rt := range models.RideTypes {
		bar.AddSeries(string(rt), barData(s.ByType(rt)))
	}
	return bar
}

func barData(counts []int64) []opts.BarData {
	items := make([]opts.BarData, len(counts))
	for i, c := range counts {
		items[i] = opts.BarData{Value: c}
	}
	return items
}

func HourlyBar(v aggregator.AggregatedView[int]) *charts.Bar {
	s := v.Pivot()
	labels := make([]string, len(s.Keys))
	for i, h := range s.Keys {
		labels[i] = strconv.Itoa(h)
	}
	return groupedBar("Count of Bikeshare Rides by Hour", "Hour", labels, s)
}

func WeekdayBar(v aggregator.AggregatedView[int]) *charts.Bar {
	s := v.Pivot()
	return groupedBar("Count of Bikeshare Rides by Weekday", "", codeLabels(s.Keys, func(k int) string {
		if k >= 0 && k < len(weekdayNames) {
			return weekdayNames[k]
		}
		return strconv.Itoa(k)
	}), s)
}

func SeasonalBar(v aggregator.AggregatedView[int]) *charts.Bar {
	s := v.Pivot()
	return groupedBar("Count of Bikeshare Rides by Season", "", codeLabels(s.Keys, lookup(models.SeasonNames)), s)
}

func WeatherBar(v aggregator.AggregatedView[int]) *charts.Bar {
	s := v.Pivot()
	return groupedBar("Count of Bikeshare Rides by Weather", "", codeLabels(s.Keys, lookup(models.WeatherNames)), s)
}

func MonthlyLine(v aggregator.AggregatedView[string]) *charts.Line {
	s := v.Pivot()
	labels := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		labels[i] = aggregator.MonthLabel(k)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts("Monthly Count of Bikeshare Rides", "", len(labels) == 0)...)
	line.SetGlobalOptions(charts.WithColorsOpts(rideTypeColors))
	line.SetXAxis(labels)
	for _, rt := range models.RideTypes {
		counts := s.ByType(rt)
		items := make([]opts.LineData, len(counts))
		for i, c := range counts {
			items[i] = opts.LineData{Value: c}
		}
		line.AddSeries(string(rt)+"_rides", items,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}
	return line
}

func RideTypePie(summary models.Summary) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Total Bikeshare Rides by Type"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithColorsOpts(rideTypeColors),
	)
	pie.AddSeries("rides", []opts.PieData{
		{Name: "Casual", Value: summary.CasualRides},
		{Name: "Registered", Value: summary.RegisteredRides},
	}, charts.WithLabelOpts(opts.Label{
		Show:      opts.Bool(true),
		Formatter: "{b}: {d}%",
	}))
	return pie
}

// ClusterScatter plots total rides against one weather measure, one series per season.
func ClusterScatter(m models.Measure, points []models.ClusterPoint) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Clusters of bikeshare rides count by " + string(m)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: string(m), Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cnt", Type: "value"}),
		charts.WithColorsOpts(seasonColors),
	)

	bySeason := make(map[int][]opts.ScatterData)
	for _, p := range points {
		bySeason[p.Season] = append(bySeason[p.Season], opts.ScatterData{Value: []interface{}{p.X, p.Count}})
	}
	for season := 1; season <= 4; season++ {
		scatter.AddSeries(models.SeasonNames[season], bySeason[season])
	}
	return scatter
}

func codeLabels(keys []int, name func(int) string) []string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = name(k)
	}
	return labels
}

func lookup(names map[int]string) func(int) string {
	return func(k int) string {
		if n, ok := names[k]; ok {
			return n
		}
		return strconv.Itoa(k)
	}
}

// FormatThousands renders n with comma separators, e.g. 3292679 -> "3,292,679".
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

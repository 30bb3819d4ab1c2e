// Package debug 求解结果的可视化报告，调试与教学展示用。
package debug

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	etypes "github.com/go-echarts/go-echarts/v2/types"

	"voltlab/types"
)

// WriteReport 将一次求解渲染为HTML报告：
// 节点电压柱状图、元件电流柱状图与告警列表。
func WriteReport(w io.Writer, cir *types.Circuit, res *types.SolveResult) error {
	page := components.NewPage()
	page.AddCharts(voltageChart(res), currentChart(cir, res))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("渲染报告: %w", err)
	}
	return writeWarnings(w, res)
}

// voltageChart 节点电压柱状图
func voltageChart(res *types.SolveResult) *charts.Bar {
	points := make([]types.Point, 0, len(res.Voltages))
	for p := range res.Voltages {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Less(points[j]) })

	labels := make([]string, 0, len(points))
	data := make([]opts.BarData, 0, len(points))
	for _, p := range points {
		labels = append(labels, fmt.Sprintf("%v #%d", p, res.NodeIndex[p]))
		data = append(data, opts.BarData{Value: res.Voltages[p]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: etypes.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    "节点电压",
			Subtitle: "地节点为参考电位0",
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "V"}),
	)
	bar.SetXAxis(labels).AddSeries("电压", data)
	return bar
}

// currentChart 元件电流柱状图，按插入顺序排列
func currentChart(cir *types.Circuit, res *types.SolveResult) *charts.Bar {
	labels := make([]string, 0, cir.Len())
	data := make([]opts.BarData, 0, cir.Len())
	for _, c := range cir.Components() {
		labels = append(labels, c.DisplayName())
		data = append(data, opts.BarData{Value: res.Currents[c.ID]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: etypes.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    "元件电流",
			Subtitle: "正方向 A→B",
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "A"}),
	)
	bar.SetXAxis(labels).AddSeries("电流", data)
	return bar
}

// writeWarnings 告警列表
func writeWarnings(w io.Writer, res *types.SolveResult) error {
	if len(res.Warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "<ul>"); err != nil {
		return err
	}
	for _, warn := range res.Warnings {
		if _, err := fmt.Fprintf(w, "<li>[%s] %s</li>\n", warn.Kind, warn.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</ul>")
	return err
}

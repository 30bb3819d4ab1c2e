package voltlab

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"voltlab/types"
)

// SweepPoint 扫描采样点
type SweepPoint struct {
	X        float64 // 属性取值
	Measured float64 // 对应测量值
}

// Sweep 对单个元件属性做等间距扫描，逐点求解并测量。
// 在电路副本上进行，原电路不被修改；求解失败的点跳过。
func Sweep(cir *types.Circuit, cfg *types.Config, cid, prop string, lo, hi float64, n int, m Measure) ([]SweepPoint, error) {
	if n < 2 {
		return nil, fmt.Errorf("扫描点数至少为2: n=%d", n)
	}
	work := cir.Clone()
	comp, ok := work.Get(cid)
	if !ok {
		return nil, fmt.Errorf("未知元件: %s", cid)
	}
	step := (hi - lo) / float64(n-1)
	out := make([]SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		x := lo + step*float64(i)
		comp.Props[prop] = x
		res := Solve(work, cfg)
		if !res.OK {
			continue
		}
		if v, got := measure(res, work, cfg, m); got && isFinite(v) {
			out = append(out, SweepPoint{X: x, Measured: v})
		}
	}
	return out, nil
}

// RenderSweep 将扫描曲线绘制为PNG写入 w
func RenderSweep(w io.Writer, points []SweepPoint, title, xlabel, ylabel string) error {
	if len(points) == 0 {
		return fmt.Errorf("无可绘制的采样点")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Measured
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("构建曲线: %w", err)
	}
	p.Add(line)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("渲染曲线: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("写出曲线: %w", err)
	}
	return nil
}

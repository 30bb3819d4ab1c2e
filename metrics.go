package voltlab

import (
	"voltlab/element"
	"voltlab/types"
)

// Metrics 元件读数：端点电压、压降、电流与功率
type Metrics struct {
	Va   float64 // 端点A电压
	Vb   float64 // 端点B电压
	Vab  float64 // 压降 A-B
	Iab  float64 // 电流，正方向 A→B
	P    float64 // 功率 Vab·Iab
	R    float64 // 等效电阻（HasR为真时有效）
	HasR bool
}

// ComponentMetrics 由求解结果计算元件读数
func ComponentMetrics(res *types.SolveResult, c *types.Component, cfg *types.Config) Metrics {
	if cfg == nil {
		def := types.DefaultConfig()
		cfg = &def
	}
	m := Metrics{
		Va:  res.Voltages[c.A],
		Vb:  res.Voltages[c.B],
		Iab: res.Currents[c.ID],
	}
	m.Vab = m.Va - m.Vb
	m.P = m.Vab * m.Iab
	if b := element.Resolve(c, cfg); b.Kind == element.KindBranch {
		m.R = b.R
		m.HasR = true
	}
	return m
}

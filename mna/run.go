package mna

import (
	"errors"
	"fmt"
	"math"

	"voltlab/graph"
	"voltlab/maths"
	"voltlab/types"
)

// Run 对电路做一次完整直流求解。
// 输入电路视为不可变快照，调用之间不保留任何状态。
func Run(cir *types.Circuit, cfg *types.Config) *types.SolveResult {
	res := types.NewSolveResult()
	nl := graph.Build(cir, cfg)

	for _, w := range nl.Warnings {
		res.Warn(w)
		switch w.Kind {
		case types.WarnInvalidComponent:
			res.Flags[w.ComponentID] = types.FlagInvalid
		}
	}
	for _, p := range nl.Points() {
		res.NodeIndex[p] = nl.NodeOf(p)
	}

	a := assemble(nl, cfg)
	x, err := a.sys.Solve()
	if err != nil {
		if errors.Is(err, maths.ErrSingular) {
			res.Warn(types.Warning{
				Kind:    types.WarnSingularSystem,
				Message: "电路矩阵奇异：可能是缺少参考地、理想短路或冲突电压源。",
			})
			return res
		}
		res.Warn(types.Warning{
			Kind:    types.WarnSingularSystem,
			Message: fmt.Sprintf("线性求解失败: %v", err),
		})
		return res
	}

	res.OK = true
	assembleVoltages(res, nl, x)
	assembleCurrents(res, cir, nl, a, x)
	detectOverflow(res, x)
	detectOvercurrent(res, cir, nl, a, x)
	detectOverrange(res, nl, cfg)
	detectOpenCircuit(res, a, x, cfg)
	return res
}

// assembleVoltages 由解向量读出端点电压，地恒为0。
// 未入系统的端点不出现在电压表中。
func assembleVoltages(res *types.SolveResult, nl *graph.Netlist, x []float64) {
	for _, p := range nl.Points() {
		switch idx := nl.NodeOf(p); {
		case idx == 0:
			res.Voltages[p] = 0
		case idx > 0:
			res.Voltages[p] = x[idx-1]
		}
	}
}

// branchCurrent 支路电流，正方向 A→B
func branchCurrent(b *graph.Branch, res *types.SolveResult) float64 {
	if b.NA < 0 || b.NB < 0 {
		return 0
	}
	va := res.Voltages[b.A]
	vb := res.Voltages[b.B]
	return (va - vb) / b.R
}

// sourceCurrent 电压源支路电流（辅助未知量，正方向 P→N 穿过电源）
func sourceCurrent(s *graph.Source, a *assembled, x []float64) (float64, bool) {
	for k, in := range a.sources {
		if in == s {
			return x[a.nodes+k], true
		}
	}
	return 0, false
}

// assembleCurrents 按原始元件归并电流。
// 展开产物以支路标签记录，父元件取闭合支路的电流；导线电流恒为0。
func assembleCurrents(res *types.SolveResult, cir *types.Circuit, nl *graph.Netlist, a *assembled, x []float64) {
	selected := make(map[string]float64)
	for _, b := range nl.Branches {
		i := branchCurrent(b, res)
		if b.Label == "main" {
			res.Currents[b.Parent] = i
			if b.Open {
				res.Flags[b.Parent] = types.FlagOpen
			}
			continue
		}
		if res.Branches[b.Parent] == nil {
			res.Branches[b.Parent] = make(map[string]float64)
		}
		res.Branches[b.Parent][b.Label] = i
		if !b.Open {
			selected[b.Parent] = i
		}
	}
	for _, s := range nl.Sources {
		i, _ := sourceCurrent(s, a, x)
		res.Currents[s.Comp.ID] = i
	}
	for _, c := range cir.Components() {
		if _, ok := res.Currents[c.ID]; ok {
			continue
		}
		res.Currents[c.ID] = selected[c.ID] // 展开元件，缺省0（导线/无效元件）
	}
}

// detectOverflow 非有限求解值仅告警，不中断
func detectOverflow(res *types.SolveResult, x []float64) {
	for i, v := range x {
		if !isFinite(v) {
			res.Warn(types.Warning{
				Kind:    types.WarnNumericOverflow,
				Message: fmt.Sprintf("解向量第%d项非有限: %v", i, v),
			})
			return
		}
	}
}

// detectOvercurrent 电源过流检测。
// 任一电源超出其告警电流即记为疑似短路；触发后其余元件按最大告警电流二次筛查。
func detectOvercurrent(res *types.SolveResult, cir *types.Circuit, nl *graph.Netlist, a *assembled, x []float64) {
	tripped := false
	maxIwarn := 0.0
	for _, s := range nl.Sources {
		if s.WarnCurrent > maxIwarn {
			maxIwarn = s.WarnCurrent
		}
		i, ok := sourceCurrent(s, a, x)
		if !ok || math.Abs(i) <= s.WarnCurrent {
			continue
		}
		tripped = true
		res.Flags[s.Comp.ID] = types.FlagSourceOvercurrent
		res.Warn(types.Warning{
			Kind:        types.WarnShortCircuit,
			ComponentID: s.Comp.ID,
			Message:     fmt.Sprintf("疑似短路：电源 %s 输出电流过大 |I|=%.3gA", s.Comp.DisplayName(), math.Abs(i)),
		})
	}
	if !tripped {
		return
	}
	for _, c := range cir.Components() {
		if c.Type == types.TypeSocket {
			continue
		}
		if _, flagged := res.Flags[c.ID]; flagged {
			continue
		}
		if math.Abs(res.Currents[c.ID]) > maxIwarn {
			res.Flags[c.ID] = types.FlagOvercurrent
		}
	}
}

// detectOverrange 仪表电流超过选定量程满偏即告警
func detectOverrange(res *types.SolveResult, nl *graph.Netlist, cfg *types.Config) {
	for _, b := range nl.Branches {
		if b.WarnCurrent <= 0 {
			continue
		}
		i := math.Abs(res.Currents[b.Parent])
		if i > b.WarnCurrent*cfg.OverrangeFactor {
			res.Flags[b.Parent] = types.FlagOverrange
			res.Warn(types.Warning{
				Kind:        types.WarnMeterOverrange,
				ComponentID: b.Parent,
				Message:     fmt.Sprintf("仪表超量程：%s |I|=%.3gA 满偏 %.3gA", b.Comp.DisplayName(), i, b.WarnCurrent),
			})
		}
	}
}

// detectOpenCircuit 电源存在但均近乎无输出电流时提示回路未闭合
func detectOpenCircuit(res *types.SolveResult, a *assembled, x []float64, cfg *types.Config) {
	if len(a.sources) == 0 {
		return
	}
	for k := range a.sources {
		if math.Abs(x[a.nodes+k]) >= cfg.OpenCurrent {
			return
		}
	}
	res.Warn(types.Warning{
		Kind:    types.WarnOpenCircuit,
		Message: "疑似断路：电源几乎无输出电流（回路未闭合）。",
	})
}

// isFinite 是否有限数值
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package mna 以改进节点分析法构建并求解直流电路方程。
// 未知量为非地节点电压与各理想电压源的支路电流。
package mna

import (
	"voltlab/graph"
	"voltlab/maths"
	"voltlab/types"
)

// assembled 加盖完成的线性系统
type assembled struct {
	sys     maths.System
	nodes   int             // 非地未知节点数
	sources []*graph.Source // 入系统的电压源，顺序即辅助行顺序
}

// assemble 构建 (N-1)+M 维系统并按插入顺序加盖。
// 地节点的行列不加盖；未入系统（无对地通路）的支路跳过。
func assemble(nl *graph.Netlist, cfg *types.Config) *assembled {
	var sources []*graph.Source
	for _, s := range nl.Sources {
		if s.NP >= 0 && s.NN >= 0 {
			sources = append(sources, s)
		}
	}

	nodes := nl.NumNodes - 1
	if nodes < 0 {
		nodes = 0
	}
	dim := nodes + len(sources)
	a := &assembled{
		sys:     maths.NewSystem(dim, cfg.PivotThreshold, cfg.SparseCutover),
		nodes:   nodes,
		sources: sources,
	}
	if dim == 0 {
		return a
	}

	for _, b := range nl.Branches {
		if b.NA < 0 || b.NB < 0 {
			continue
		}
		a.stampConductance(b.NA, b.NB, 1/b.R)
	}
	for k, s := range sources {
		a.stampSource(s.NP, s.NN, k, s.V)
	}
	return a
}

// stampConductance 二端电导支路加盖：对角叠加g，互导减g
func (a *assembled) stampConductance(ni, nj int, g float64) {
	if i := ni - 1; i >= 0 {
		a.sys.Add(i, i, g)
	}
	if j := nj - 1; j >= 0 {
		a.sys.Add(j, j, g)
	}
	if i, j := ni-1, nj-1; i >= 0 && j >= 0 {
		a.sys.Add(i, j, -g)
		a.sys.Add(j, i, -g)
	}
}

// stampSource 理想电压源加盖：
// 辅助未知量为支路电流，约束行建立 V(p)-V(n)=v。
func (a *assembled) stampSource(np, nn, k int, v float64) {
	row := a.nodes + k
	if p := np - 1; p >= 0 {
		a.sys.Add(p, row, 1)
		a.sys.Add(row, p, 1)
	}
	if n := nn - 1; n >= 0 {
		a.sys.Add(n, row, -1)
		a.sys.Add(row, n, -1)
	}
	a.sys.SetRHS(row, v)
}

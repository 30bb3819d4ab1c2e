// Package voltlab 直流电阻网络稳态求解器。
// 将摆放的元件集合规范化为电学节点图，构建改进节点分析方程，
// 求解节点电压与支路电流，并给出结构化诊断告警。
package voltlab

import (
	"voltlab/mna"
	"voltlab/types"
)

// Solve 对电路做一次直流稳态求解。
// cfg 为 nil 时使用默认参数。电路在调用期间不得被并发修改。
func Solve(cir *types.Circuit, cfg *types.Config) *types.SolveResult {
	if cfg == nil {
		def := types.DefaultConfig()
		cfg = &def
	}
	return mna.Run(cir, cfg)
}

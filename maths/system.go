package maths

import "errors"

// ErrSingular 系统矩阵在阈值内不可逆
var ErrSingular = errors.New("矩阵奇异")

// System 线性系统 Ax=b 的加盖与求解接口
type System interface {
	Dim() int                  // 系统维度
	Add(i, j int, v float64)   // A(i,j) 叠加，0基索引
	AddRHS(i int, v float64)   // b(i) 叠加
	SetRHS(i int, v float64)   // b(i) 置值
	Solve() ([]float64, error) // 求解，奇异时返回 ErrSingular
}

// NewSystem 构造线性系统。
// 维度超过 cutover 时改用稀疏求解，交互规模电路走稠密消元。
func NewSystem(n int, pivotThreshold float64, cutover int) System {
	if cutover > 0 && n > cutover {
		if s, err := newSparseSystem(n, pivotThreshold); err == nil {
			return s
		}
	}
	return newDenseSystem(n, pivotThreshold)
}

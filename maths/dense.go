package maths

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// denseSystem 稠密系统，高斯消元求解
type denseSystem struct {
	n   int
	a   *mat.Dense
	b   *mat.VecDense
	tol float64
}

// newDenseSystem 初始化。零维系统不分配存储，求解恒为空解。
func newDenseSystem(n int, pivotThreshold float64) *denseSystem {
	s := &denseSystem{n: n, tol: pivotThreshold}
	if n > 0 {
		s.a = mat.NewDense(n, n, nil)
		s.b = mat.NewVecDense(n, nil)
	}
	return s
}

func (s *denseSystem) Dim() int { return s.n }

func (s *denseSystem) Add(i, j int, v float64) {
	s.a.Set(i, j, s.a.At(i, j)+v)
}

func (s *denseSystem) AddRHS(i int, v float64) {
	s.b.SetVec(i, s.b.AtVec(i)+v)
}

func (s *denseSystem) SetRHS(i int, v float64) {
	s.b.SetVec(i, v)
}

// Solve 带部分主元的高斯消元。
// 原始矩阵保留，消元在副本上进行；主元绝对值低于阈值判定奇异。
func (s *denseSystem) Solve() ([]float64, error) {
	n := s.n
	if n == 0 {
		return nil, nil
	}
	m := mat.DenseCopyOf(s.a)
	x := make([]float64, n)
	for i := range x {
		x[i] = s.b.AtVec(i)
	}

	for col := 0; col < n; col++ {
		// 主元选择：该列当前行及以下绝对值最大者，同值取靠前行
		pivot := col
		best := math.Abs(m.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := math.Abs(m.At(r, col)); v > best {
				best = v
				pivot = r
			}
		}
		if best < s.tol {
			return nil, ErrSingular
		}
		if pivot != col {
			swapRows(m, n, col, pivot)
			x[col], x[pivot] = x[pivot], x[col]
		}

		inv := 1 / m.At(col, col)
		for c := col; c < n; c++ {
			m.Set(col, c, m.At(col, c)*inv)
		}
		x[col] *= inv

		for r := col + 1; r < n; r++ {
			factor := m.At(r, col)
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m.Set(r, c, m.At(r, c)-factor*m.At(col, c))
			}
			x[r] -= factor * x[col]
		}
	}

	// 回代
	for col := n - 1; col >= 0; col-- {
		for r := 0; r < col; r++ {
			factor := m.At(r, col)
			if factor == 0 {
				continue
			}
			m.Set(r, col, 0)
			x[r] -= factor * x[col]
		}
	}
	return x, nil
}

// swapRows 交换前n列的两行
func swapRows(m *mat.Dense, n, i, j int) {
	for c := 0; c < n; c++ {
		vi, vj := m.At(i, c), m.At(j, c)
		m.Set(i, c, vj)
		m.Set(j, c, vi)
	}
}

package maths

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// sparseSystem 稀疏系统，基于 Sparse1.3 的 LU 分解。
// 库内部行列从1起算，0行列为地，本接口对外保持0基。
type sparseSystem struct {
	n   int
	m   *sparse.Matrix
	rhs []float64
	tol float64
}

// newSparseSystem 初始化
func newSparseSystem(n int, pivotThreshold float64) (*sparseSystem, error) {
	cfg := &sparse.Configuration{
		Real:          true,
		Expandable:    true,
		Translate:     true,
		ModifiedNodal: true,
	}
	m, err := sparse.Create(int64(n), cfg)
	if err != nil {
		return nil, fmt.Errorf("创建稀疏矩阵: %w", err)
	}
	m.Clear()
	return &sparseSystem{
		n:   n,
		m:   m,
		rhs: make([]float64, n+1),
		tol: pivotThreshold,
	}, nil
}

func (s *sparseSystem) Dim() int { return s.n }

func (s *sparseSystem) Add(i, j int, v float64) {
	s.m.GetElement(int64(i+1), int64(j+1)).Real += v
}

func (s *sparseSystem) AddRHS(i int, v float64) {
	s.rhs[i+1] += v
}

func (s *sparseSystem) SetRHS(i int, v float64) {
	s.rhs[i+1] = v
}

// Solve 排序分解后求解，分解失败视为奇异
func (s *sparseSystem) Solve() ([]float64, error) {
	if s.n == 0 {
		return nil, nil
	}
	if err := s.m.OrderAndFactor(s.rhs, 0, s.tol, true); err != nil {
		return nil, ErrSingular
	}
	sol, err := s.m.Solve(s.rhs)
	if err != nil {
		return nil, ErrSingular
	}
	return sol[1 : s.n+1], nil
}

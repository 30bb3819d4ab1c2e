package graph

import "voltlab/types"

// unionFind 以坐标为键的并查集，用于零电阻连接的节点合并。
// 取字典序较小的坐标为根，保证等价类代表元确定。
type unionFind struct {
	parent map[types.Point]types.Point
}

// newUnionFind 初始化
func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[types.Point]types.Point)}
}

// Touch 登记坐标
func (uf *unionFind) Touch(p types.Point) {
	if _, ok := uf.parent[p]; !ok {
		uf.parent[p] = p
	}
}

// Find 查找等价类代表元，带路径压缩
func (uf *unionFind) Find(p types.Point) types.Point {
	uf.Touch(p)
	root := p
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[p] != root {
		uf.parent[p], p = root, uf.parent[p]
	}
	return root
}

// Union 合并两个等价类
func (uf *unionFind) Union(a, b types.Point) {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return
	}
	if rb.Less(ra) {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
}

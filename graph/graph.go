package graph

import (
	"fmt"

	"voltlab/element"
	"voltlab/types"
)

// Branch 有限电阻二端支路
type Branch struct {
	Comp        *types.Component // 支路元件（可能为开关展开产物）
	Parent      string           // 原始元件ID
	Label       string           // 支路标签: main/t0/t1
	R           float64          // 支路电阻
	WarnCurrent float64          // 安全电流阈值，0表示无
	Open        bool             // 是否为断开状态支路
	A, B        types.Point      // 端点
	NA, NB      int              // 端点节点编号
}

// Source 理想电压源支路
type Source struct {
	Comp        *types.Component
	V           float64     // 电压值
	WarnCurrent float64     // 告警电流
	P, N        types.Point // 正负端点
	NP, NN      int         // 端点节点编号
}

// Netlist 一次求解的规范化电路：展开、合并、编号后的支路集合。
// 每次求解由持久化电路重新推导，不回写、不缓存。
type Netlist struct {
	Branches []*Branch
	Sources  []*Source
	Warnings []types.Warning
	Ground   types.Point // 接地等价类代表元
	NumNodes int         // 已编号节点数（含地）

	uf     *unionFind
	nodeOf map[types.Point]int // 代表元 → 节点编号，-1表示未入系统
	points []types.Point       // 全部端点，首次出现顺序
}

// NodeOf 端点所属节点编号。地为0，无对地通路为-1。
func (nl *Netlist) NodeOf(p types.Point) int {
	if nl.uf == nil {
		return -1
	}
	if idx, ok := nl.nodeOf[nl.uf.Find(p)]; ok {
		return idx
	}
	return -1
}

// Points 全部端点，首次出现顺序
func (nl *Netlist) Points() []types.Point { return nl.points }

// expand 多掷开关展开。
// SPDT (common,b,c) 按掷位生成两条互斥SPST支路，选中侧闭合、另一侧断开。
// 展开为纯求解时变换，持久化电路不被修改。
func expand(c *types.Component) []*types.Component {
	if c.Type != types.TypeSwitchSPDT {
		return []*types.Component{c}
	}
	throw := c.IntProp("throw", 0)
	state := func(sel bool) float64 {
		if sel {
			return 1
		}
		return 0
	}
	t0 := &types.Component{
		ID:    c.ID + ":t0",
		Type:  types.TypeSwitchSPST,
		A:     c.A,
		B:     c.B,
		Props: map[string]float64{"state": state(throw == 0)},
	}
	t1 := &types.Component{
		ID:    c.ID + ":t1",
		Type:  types.TypeSwitchSPST,
		A:     c.A,
		B:     c.ThirdPoint(),
		Props: map[string]float64{"state": state(throw != 0)},
	}
	return []*types.Component{t0, t1}
}

// Build 将电路规范化为可加盖的网表：
// 展开多掷开关，按导线合并节点，选定接地，编号可达节点。
func Build(cir *types.Circuit, cfg *types.Config) *Netlist {
	nl := &Netlist{
		uf:     newUnionFind(),
		nodeOf: make(map[types.Point]int),
	}

	seen := make(map[types.Point]bool)
	touch := func(p types.Point) {
		nl.uf.Touch(p)
		if !seen[p] {
			seen[p] = true
			nl.points = append(nl.points, p)
		}
	}

	// 展开与解析，插入顺序保证确定性
	for _, orig := range cir.Components() {
		for _, c := range expand(orig) {
			label := "main"
			if c != orig {
				label = c.ID[len(orig.ID)+1:]
			}
			touch(c.A)
			touch(c.B)
			b := element.Resolve(c, cfg)
			switch b.Kind {
			case element.KindMerge:
				nl.uf.Union(c.A, c.B)
			case element.KindBranch:
				nl.Branches = append(nl.Branches, &Branch{
					Comp:        c,
					Parent:      orig.ID,
					Label:       label,
					R:           b.R,
					WarnCurrent: b.WarnCurrent,
					Open:        c.Type == types.TypeSwitchSPST && c.IntProp("state", 1) != 1,
					A:           c.A,
					B:           c.B,
				})
			case element.KindSource:
				nl.Sources = append(nl.Sources, &Source{
					Comp:        c,
					V:           b.V,
					WarnCurrent: b.WarnCurrent,
					P:           c.A,
					N:           c.B,
				})
			case element.KindInvalid:
				nl.Warnings = append(nl.Warnings, types.Warning{
					Kind:        types.WarnInvalidComponent,
					ComponentID: orig.ID,
					Message:     fmt.Sprintf("元件 %s 无效: %v", orig.DisplayName(), b.Err),
				})
			}
		}
	}

	if len(nl.points) == 0 {
		return nl
	}

	// 接地选择：优先第一个电源的负端，否则第一个元件的端点A
	if len(nl.Sources) > 0 {
		nl.Ground = nl.uf.Find(nl.Sources[0].N)
	} else {
		nl.Ground = nl.uf.Find(cir.Components()[0].A)
	}

	nl.index()
	nl.bind()
	return nl
}

// index 节点编号：地为0，其余可达节点按端点首次出现顺序编号。
// 无对地通路的等价类不入系统并记录告警。
func (nl *Netlist) index() {
	reach := nl.reachable()
	nl.nodeOf[nl.Ground] = 0
	next := 1
	warned := make(map[types.Point]bool)
	for _, p := range nl.points {
		rep := nl.uf.Find(p)
		if _, ok := nl.nodeOf[rep]; ok {
			continue
		}
		if reach[rep] {
			nl.nodeOf[rep] = next
			next++
			continue
		}
		nl.nodeOf[rep] = -1
		if !warned[rep] {
			warned[rep] = true
			node := rep
			nl.Warnings = append(nl.Warnings, types.Warning{
				Kind:    types.WarnDisconnectedNode,
				Node:    &node,
				Message: fmt.Sprintf("节点 %v 无对地通路，未参与求解", rep),
			})
		}
	}
	nl.NumNodes = next
}

// reachable 从地出发经支路与电源可达的等价类集合
func (nl *Netlist) reachable() map[types.Point]bool {
	adj := make(map[types.Point][]types.Point)
	link := func(a, b types.Point) {
		ra, rb := nl.uf.Find(a), nl.uf.Find(b)
		adj[ra] = append(adj[ra], rb)
		adj[rb] = append(adj[rb], ra)
	}
	for _, b := range nl.Branches {
		link(b.A, b.B)
	}
	for _, s := range nl.Sources {
		link(s.P, s.N)
	}
	reach := map[types.Point]bool{nl.Ground: true}
	queue := []types.Point{nl.Ground}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range adj[cur] {
			if !reach[nb] {
				reach[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return reach
}

// bind 回填支路端点的节点编号
func (nl *Netlist) bind() {
	for _, b := range nl.Branches {
		b.NA, b.NB = nl.NodeOf(b.A), nl.NodeOf(b.B)
	}
	for _, s := range nl.Sources {
		s.NP, s.NN = nl.NodeOf(s.P), nl.NodeOf(s.N)
	}
}

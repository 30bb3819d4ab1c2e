package types

import "fmt"

// Circuit 电路：按插入顺序记录的元件集合。
// 插入顺序仅用于保证加盖与接地选择的确定性，不改变电学含义。
type Circuit struct {
	order []string
	byID  map[string]*Component
}

// NewCircuit 初始化
func NewCircuit() *Circuit {
	return &Circuit{byID: make(map[string]*Component)}
}

// Add 创建并加入元件，返回元件ID
func (cir *Circuit) Add(t ComponentType, a, b Point, props map[string]float64) string {
	c := NewComponent(t, a, b, props)
	cir.order = append(cir.order, c.ID)
	cir.byID[c.ID] = c
	return c.ID
}

// Insert 加入已有元件
func (cir *Circuit) Insert(c *Component) error {
	if !c.Type.Valid() {
		return fmt.Errorf("未知元件类型: %q", c.Type)
	}
	if c.ID == "" {
		return fmt.Errorf("元件缺少ID")
	}
	if _, ok := cir.byID[c.ID]; ok {
		return fmt.Errorf("元件ID重复: %s", c.ID)
	}
	if c.A == c.B {
		return fmt.Errorf("元件端点重合: %s %v", c.DisplayName(), c.A)
	}
	cir.order = append(cir.order, c.ID)
	cir.byID[c.ID] = c
	return nil
}

// Get 查找元件
func (cir *Circuit) Get(id string) (*Component, bool) {
	c, ok := cir.byID[id]
	return c, ok
}

// Delete 删除元件
func (cir *Circuit) Delete(id string) bool {
	if _, ok := cir.byID[id]; !ok {
		return false
	}
	delete(cir.byID, id)
	for i, v := range cir.order {
		if v == id {
			cir.order = append(cir.order[:i], cir.order[i+1:]...)
			break
		}
	}
	return true
}

// Len 元件数量
func (cir *Circuit) Len() int { return len(cir.order) }

// Components 按插入顺序返回元件列表
func (cir *Circuit) Components() []*Component {
	out := make([]*Component, 0, len(cir.order))
	for _, id := range cir.order {
		out = append(out, cir.byID[id])
	}
	return out
}

// Reset 以给定元件列表整体替换内容（撤销/重做用）
func (cir *Circuit) Reset(components []*Component) {
	cir.order = cir.order[:0]
	cir.byID = make(map[string]*Component, len(components))
	for _, c := range components {
		cir.order = append(cir.order, c.ID)
		cir.byID[c.ID] = c
	}
}

// Clone 深拷贝（求解私有副本用）
func (cir *Circuit) Clone() *Circuit {
	cp := NewCircuit()
	for _, c := range cir.Components() {
		cc := c.Clone()
		cp.order = append(cp.order, cc.ID)
		cp.byID[cc.ID] = cc
	}
	return cp
}

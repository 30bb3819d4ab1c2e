package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ComponentType 元件类型
type ComponentType string

// 电路元件类型常量定义
const (
	TypeWire         ComponentType = "wire"
	TypeResistor     ComponentType = "resistor"
	TypeBulb         ComponentType = "bulb"
	TypeRheostat     ComponentType = "rheostat"
	TypeSocket       ComponentType = "socket"
	TypeSwitchSPST   ComponentType = "switch_spst"
	TypeSwitchSPDT   ComponentType = "switch_spdt"
	TypeAmmeter      ComponentType = "ammeter"
	TypeVoltmeter    ComponentType = "voltmeter"
	TypeGalvanometer ComponentType = "galvanometer"
)

// componentTypes 已注册类型集合
var componentTypes = map[ComponentType]bool{
	TypeWire:         true,
	TypeResistor:     true,
	TypeBulb:         true,
	TypeRheostat:     true,
	TypeSocket:       true,
	TypeSwitchSPST:   true,
	TypeSwitchSPDT:   true,
	TypeAmmeter:      true,
	TypeVoltmeter:    true,
	TypeGalvanometer: true,
}

// Valid 是否为已注册类型
func (t ComponentType) Valid() bool { return componentTypes[t] }

// NewComponentID 生成元件唯一标识
func NewComponentID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:])
}

// Component 元件信息
type Component struct {
	ID    string             // 唯一标识
	Type  ComponentType      // 元件类型
	A     Point              // 端点A
	B     Point              // 端点B
	C     *Point             // 端点C（仅SPDT等三端元件）
	Props map[string]float64 // 数值属性
	Meta  map[string]string  // UI附加信息（求解忽略）
}

// NewComponent 创建元件
func NewComponent(t ComponentType, a, b Point, props map[string]float64) *Component {
	if props == nil {
		props = map[string]float64{}
	}
	return &Component{
		ID:    NewComponentID(),
		Type:  t,
		A:     a,
		B:     b,
		Props: props,
		Meta:  map[string]string{},
	}
}

// Prop 读取属性，缺省时返回默认值
func (c *Component) Prop(key string, def float64) float64 {
	if v, ok := c.Props[key]; ok {
		return v
	}
	return def
}

// IntProp 读取整型属性
func (c *Component) IntProp(key string, def int) int {
	if v, ok := c.Props[key]; ok {
		return int(v)
	}
	return def
}

// ThirdPoint 三端元件的第三端点。
// 未显式给出时按 c_x/c_y 属性推导，再缺省取 (B.X, B.Y+2)。
func (c *Component) ThirdPoint() Point {
	if c.C != nil {
		return *c.C
	}
	x := c.IntProp("c_x", c.B.X)
	y := c.IntProp("c_y", c.B.Y+2)
	return Point{X: x, Y: y}
}

// DisplayName 显示名称
func (c *Component) DisplayName() string {
	id := c.ID
	if len(id) > 4 {
		id = id[:4]
	}
	return fmt.Sprintf("%s:%s", c.Type, id)
}

// Endpoints 所有端点
func (c *Component) Endpoints() []Point {
	if c.Type == TypeSwitchSPDT {
		return []Point{c.A, c.B, c.ThirdPoint()}
	}
	return []Point{c.A, c.B}
}

// Clone 深拷贝
func (c *Component) Clone() *Component {
	cp := *c
	cp.Props = make(map[string]float64, len(c.Props))
	for k, v := range c.Props {
		cp.Props[k] = v
	}
	cp.Meta = make(map[string]string, len(c.Meta))
	for k, v := range c.Meta {
		cp.Meta[k] = v
	}
	if c.C != nil {
		p := *c.C
		cp.C = &p
	}
	return &cp
}

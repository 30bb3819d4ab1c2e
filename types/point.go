package types

import (
	"encoding/json"
	"fmt"
)

// Point 栅格坐标，作为节点识别键
type Point struct {
	X int
	Y int
}

// Pt 构造坐标
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Less 字典序比较，用于确定性排序
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// String 格式化
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// MarshalJSON 序列化为 [x, y]
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON 解析 [x, y]
func (p *Point) UnmarshalJSON(data []byte) error {
	var arr [2]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	p.X, p.Y = arr[0], arr[1]
	return nil
}

package voltlab

import (
	"encoding/json"
	"fmt"

	"voltlab/types"
)

// componentJSON 元件持久化形式
type componentJSON struct {
	CID   string             `json:"cid"`
	CType string             `json:"ctype"`
	A     types.Point        `json:"a"`
	B     types.Point        `json:"b"`
	C     *types.Point       `json:"c,omitempty"`
	Props map[string]float64 `json:"props"`
	Meta  map[string]string  `json:"meta"`
}

// circuitJSON 电路持久化形式
type circuitJSON struct {
	Components []componentJSON `json:"components"`
}

// MarshalCircuit 序列化电路，元件按插入顺序输出
func MarshalCircuit(cir *types.Circuit) ([]byte, error) {
	out := circuitJSON{Components: make([]componentJSON, 0, cir.Len())}
	for _, c := range cir.Components() {
		props := c.Props
		if props == nil {
			props = map[string]float64{}
		}
		meta := c.Meta
		if meta == nil {
			meta = map[string]string{}
		}
		out.Components = append(out.Components, componentJSON{
			CID:   c.ID,
			CType: string(c.Type),
			A:     c.A,
			B:     c.B,
			C:     c.C,
			Props: props,
			Meta:  meta,
		})
	}
	return json.Marshal(out)
}

// UnmarshalCircuit 解析电路，保持文件中的元件顺序
func UnmarshalCircuit(data []byte) (*types.Circuit, error) {
	var in circuitJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("解析电路: %w", err)
	}
	cir := types.NewCircuit()
	for _, it := range in.Components {
		c := &types.Component{
			ID:    it.CID,
			Type:  types.ComponentType(it.CType),
			A:     it.A,
			B:     it.B,
			C:     it.C,
			Props: it.Props,
			Meta:  it.Meta,
		}
		if c.Props == nil {
			c.Props = map[string]float64{}
		}
		if c.Meta == nil {
			c.Meta = map[string]string{}
		}
		if err := cir.Insert(c); err != nil {
			return nil, err
		}
	}
	return cir, nil
}

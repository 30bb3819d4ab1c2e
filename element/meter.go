package element

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"voltlab/types"
)

// parseFloatList 解析量程列表。
// 接受 JSON 数组或以逗号/分号分隔的数值串，非法项跳过。
func parseFloatList(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err == nil {
		out := make([]float64, 0, len(arr))
		for _, it := range arr {
			if f, ok := it.(float64); ok {
				out = append(out, f)
			}
		}
		return out
	}
	parts := strings.Split(strings.ReplaceAll(s, ";", ","), ",")
	var out []float64
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if f, err := strconv.ParseFloat(p, 64); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// Ranges 仪表量程列表，取自元件Meta
func Ranges(c *types.Component) []float64 {
	var key string
	switch c.Type {
	case types.TypeAmmeter, types.TypeGalvanometer:
		key = "ranges_I"
	case types.TypeVoltmeter:
		key = "ranges_V"
	default:
		return nil
	}
	s, ok := c.Meta[key]
	if !ok {
		s = c.Meta["ranges"]
	}
	return parseFloatList(s)
}

// FullScale 当前选定量程的满偏值。无量程配置时返回 false。
func FullScale(c *types.Component) (float64, bool) {
	ranges := Ranges(c)
	if len(ranges) == 0 {
		return 0, false
	}
	idx := c.IntProp("range", 0)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ranges) {
		idx = len(ranges) - 1
	}
	return ranges[idx], true
}

// AmmeterResistance 电流表内阻。
// 有量程时按压降负担电压 burden_V / 满偏电流推算，否则取 Rin。
func AmmeterResistance(c *types.Component, cfg *types.Config) float64 {
	fs, ok := FullScale(c)
	if !ok {
		return max(c.Prop("Rin", 0.05), cfg.NearShortR)
	}
	burden := c.Prop("burden_V", 0.05)
	return max(burden/max(math.Abs(fs), 1e-15), cfg.NearShortR)
}

// VoltmeterResistance 电压表内阻。
// 有量程时按灵敏度 ohm_per_V × 满偏电压推算，否则取 Rin。
func VoltmeterResistance(c *types.Component, cfg *types.Config) float64 {
	fs, ok := FullScale(c)
	if !ok {
		return max(c.Prop("Rin", 1e6), cfg.NearShortR)
	}
	opv := c.Prop("ohm_per_V", c.Prop("sens", 1e4))
	return max(opv*max(math.Abs(fs), 1e-15), cfg.NearShortR)
}

// GalvanometerResistance 检流计内阻。
// 选定量程大于线圈满偏电流时并联分流电阻，等效内阻为 Rcoil ∥ Rs。
func GalvanometerResistance(c *types.Component, cfg *types.Config) float64 {
	rcoil := c.Prop("Rcoil", 50)
	fs, ok := FullScale(c)
	if !ok {
		return max(rcoil, cfg.NearShortR)
	}
	ifs := c.Prop("Ifs", 50e-6)
	if math.Abs(ifs) < 1e-15 {
		return max(rcoil, cfg.NearShortR)
	}
	ratio := math.Abs(fs) / math.Abs(ifs)
	if ratio <= 1 {
		return max(rcoil, cfg.NearShortR)
	}
	rs := max(rcoil/(ratio-1), cfg.NearShortR)
	return max(1/(1/rcoil+1/rs), cfg.NearShortR)
}

// meterWarnCurrent 电流表超量程阈值（选定量程满偏值）
func meterWarnCurrent(c *types.Component) float64 {
	if fs, ok := FullScale(c); ok {
		return math.Abs(fs)
	}
	return 0
}

// galvanometerWarnCurrent 检流计超量程阈值。
// 无量程配置时退回线圈满偏电流 Ifs。
func galvanometerWarnCurrent(c *types.Component) float64 {
	if fs, ok := FullScale(c); ok {
		return math.Abs(fs)
	}
	return math.Abs(c.Prop("Ifs", 50e-6))
}

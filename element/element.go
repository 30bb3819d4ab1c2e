package element

import (
	"fmt"

	"voltlab/types"
)

// Kind 元件电学行为类别
type Kind int

// 行为类别常量定义
const (
	KindInvalid Kind = iota // 属性非法，支路不参与求解
	KindMerge               // 零电阻连接，端点合并为同一节点
	KindBranch              // 有限电阻二端支路
	KindSource              // 理想电压源
	KindExpand              // 多掷开关，求解前需展开为SPST支路
)

// Behavior 元件电学行为。由类型与属性纯函数推导，不含状态。
type Behavior struct {
	Kind        Kind
	R           float64 // KindBranch: 等效电阻
	V           float64 // KindSource: 电压值
	WarnCurrent float64 // 安全电流阈值（电源额定或仪表满偏），0表示无
	Err         error   // KindInvalid: 非法原因
}

// Resolve 根据元件类型与属性推导电学行为。
// 多掷开关返回 KindExpand，由上层展开后再逐支路解析。
func Resolve(c *types.Component, cfg *types.Config) Behavior {
	switch c.Type {
	case types.TypeWire:
		return Behavior{Kind: KindMerge}

	case types.TypeResistor:
		r := c.Prop("R", 100)
		if r <= 0 {
			return invalid("电阻值必须为正: R=%g", r)
		}
		return Behavior{Kind: KindBranch, R: r}

	case types.TypeBulb:
		vr := c.Prop("Vr", 6)
		wr := c.Prop("Wr", 3)
		if wr <= 0 {
			return invalid("灯泡额定功率必须为正: Wr=%g", wr)
		}
		r := vr * vr / wr
		if r < cfg.MinResistance {
			r = cfg.MinResistance
		}
		return Behavior{Kind: KindBranch, R: r}

	case types.TypeRheostat:
		r := c.Prop("R", 100)
		if r <= 0 {
			return invalid("变阻器阻值必须为正: R=%g", r)
		}
		rmin := c.Prop("Rmin", 0)
		rmax := c.Prop("Rmax", max(r, 100))
		if rmax < rmin {
			rmin, rmax = rmax, rmin
		}
		r = min(max(r, rmin), rmax)
		if r < cfg.MinResistance {
			r = cfg.MinResistance
		}
		return Behavior{Kind: KindBranch, R: r}

	case types.TypeSocket:
		return Behavior{
			Kind:        KindSource,
			V:           c.Prop("V", 5),
			WarnCurrent: c.Prop("Iwarn", cfg.SourceIwarn),
		}

	case types.TypeSwitchSPST:
		if c.IntProp("state", 1) == 1 {
			return Behavior{Kind: KindBranch, R: cfg.SwitchClosedR}
		}
		return Behavior{Kind: KindBranch, R: cfg.SwitchOpenR}

	case types.TypeSwitchSPDT:
		return Behavior{Kind: KindExpand}

	case types.TypeAmmeter:
		return Behavior{Kind: KindBranch, R: AmmeterResistance(c, cfg), WarnCurrent: meterWarnCurrent(c)}

	case types.TypeVoltmeter:
		return Behavior{Kind: KindBranch, R: VoltmeterResistance(c, cfg)}

	case types.TypeGalvanometer:
		return Behavior{Kind: KindBranch, R: GalvanometerResistance(c, cfg), WarnCurrent: galvanometerWarnCurrent(c)}
	}
	return invalid("未知元件类型: %q", c.Type)
}

// invalid 构造非法行为
func invalid(format string, args ...any) Behavior {
	return Behavior{Kind: KindInvalid, Err: fmt.Errorf(format, args...)}
}

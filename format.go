package voltlab

import (
	"fmt"
	"math"
)

// FormatSI 按SI词头缩放的人读形式，3位有效数字
func FormatSI(x float64, unit string) string {
	ax := math.Abs(x)
	switch {
	case ax >= 1e3:
		return fmt.Sprintf("%.3gk%s", x/1e3, unit)
	case ax >= 1:
		return fmt.Sprintf("%.3g%s", x, unit)
	case ax >= 1e-3:
		return fmt.Sprintf("%.3gm%s", x*1e3, unit)
	case ax >= 1e-6:
		return fmt.Sprintf("%.3gµ%s", x*1e6, unit)
	default:
		return fmt.Sprintf("%.3g%s", x, unit)
	}
}

// FormatOptions 数值显示选项
type FormatOptions struct {
	Scientific bool    // 科学计数而非SI词头
	MaxAbs     float64 // 超出则显示为 ">…"，默认 1e12
	MinAbs     float64 // 低于则显示为 "~0"，默认 1e-15
	Digits     int     // 有效数字，默认 3
}

// FormatValue 带上下限保护的数值显示。
// 非有限值显示为 ∞，极小值归并为 ~0，极大值截断提示。
func FormatValue(x float64, unit string, opt *FormatOptions) string {
	o := FormatOptions{MaxAbs: 1e12, MinAbs: 1e-15, Digits: 3}
	if opt != nil {
		o = *opt
		if o.MaxAbs == 0 {
			o.MaxAbs = 1e12
		}
		if o.MinAbs == 0 {
			o.MinAbs = 1e-15
		}
		if o.Digits == 0 {
			o.Digits = 3
		}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "∞" + unit
	}
	ax := math.Abs(x)
	if ax > 0 && ax < o.MinAbs {
		return "~0" + unit
	}
	if ax > o.MaxAbs {
		lim := o.MaxAbs
		if x < 0 {
			lim = -o.MaxAbs
		}
		if o.Scientific {
			return fmt.Sprintf(">%.*e%s", o.Digits, lim, unit)
		}
		return ">" + FormatSI(lim, unit)
	}
	if o.Scientific {
		return fmt.Sprintf("%.*e%s", o.Digits, x, unit)
	}
	return FormatSI(x, unit)
}

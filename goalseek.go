package voltlab

import (
	"fmt"
	"math"
	"strings"

	"voltlab/types"
)

// Measure 目标量取值说明：节点电压或元件读数
type Measure struct {
	Node        *types.Point // 取节点电压，非空时忽略其余字段
	ComponentID string       // 取元件读数
	Field       string       // 读数字段: Va/Vb/Vab/Iab/P/R，默认 Iab
	Branch      string       // 多掷开关支路标签，仅对 Iab 有效
	Abs         bool         // 取绝对值
}

// GoalSpec 参数寻优说明
type GoalSpec struct {
	ComponentID       string  // 被调元件
	Prop              string  // 被调属性
	Target            float64 // 目标值
	Measure           Measure
	Lo, Hi            float64
	TolAbs            float64 // 绝对容差，默认 1e-9
	TolRel            float64 // 相对容差，默认 1e-6
	MaxIter           int     // 默认 60
	Method            string  // auto/bisect/secant，默认 auto
	RejectOvercurrent bool    // 电源过流的解视为无效
}

// GoalPoint 寻优轨迹点
type GoalPoint struct {
	X        float64 // 属性取值
	Measured float64 // 对应测量值
}

// GoalSeekResult 寻优结果
type GoalSeekResult struct {
	OK         bool
	Value      float64 // 属性取值（失败时为最优尝试）
	Achieved   float64 // 实际测量值
	Target     float64
	Error      float64
	Iterations int
	Message    string
	History    []GoalPoint
}

// GoalSeek 调整单个元件的单个数值属性，使测量值达到目标。
// 区间括住目标时用二分，否则退回割线法；在电路副本上求值，原电路不被修改。
func GoalSeek(cir *types.Circuit, cfg *types.Config, spec GoalSpec) GoalSeekResult {
	out := GoalSeekResult{Target: spec.Target}
	work := cir.Clone()
	comp, ok := work.Get(spec.ComponentID)
	if !ok {
		out.Message = fmt.Sprintf("未知元件: %s", spec.ComponentID)
		return out
	}
	lo, hi := spec.Lo, spec.Hi
	if lo == hi {
		out.Message = "区间上下界相等"
		return out
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if spec.TolAbs <= 0 {
		spec.TolAbs = 1e-9
	}
	if spec.TolRel <= 0 {
		spec.TolRel = 1e-6
	}
	if spec.MaxIter <= 0 {
		spec.MaxIter = 60
	}
	if spec.Method == "" {
		spec.Method = "auto"
	}

	type sample struct {
		err, measured float64
		ok            bool
	}
	cache := make(map[float64]sample)
	eval := func(x float64) sample {
		if s, hit := cache[x]; hit {
			return s
		}
		comp.Props[spec.Prop] = x
		res := Solve(work, cfg)
		s := sample{}
		if res.OK && !(spec.RejectOvercurrent && hasFlag(res, types.FlagSourceOvercurrent)) {
			if mv, got := measure(res, work, cfg, spec.Measure); got && isFinite(mv) && isFinite(mv-spec.Target) {
				s = sample{err: mv - spec.Target, measured: mv, ok: true}
			}
		}
		cache[x] = s
		return s
	}

	sLo, sHi := eval(lo), eval(hi)

	// 边界求值失败时尝试以中点替换失败端
	if spec.Method == "auto" && (!sLo.ok || !sHi.ok) {
		mid := 0.5 * (lo + hi)
		if sMid := eval(mid); sMid.ok {
			if !sLo.ok {
				lo, sLo = mid, sMid
			} else if !sHi.ok {
				hi, sHi = mid, sMid
			}
		}
	}
	if !sLo.ok || !sHi.ok {
		out.Message = "区间端点求值失败"
		return out
	}
	out.History = append(out.History, GoalPoint{lo, sLo.measured}, GoalPoint{hi, sHi.measured})

	bracketed := func(a, b float64) bool {
		return a == 0 || b == 0 || (a < 0 && b > 0) || (a > 0 && b < 0)
	}
	isBracketed := bracketed(sLo.err, sHi.err)

	// 未括住目标时向外扩展区间；正区间的阻值参数按十倍扩展
	if spec.Method == "auto" && !isBracketed {
		lo2, hi2 := lo, hi
		e2lo, e2hi := sLo, sHi
		for range 12 {
			if bracketed(e2lo.err, e2hi.err) {
				lo, hi, sLo, sHi = lo2, hi2, e2lo, e2hi
				isBracketed = true
				break
			}
			if lo2 > 0 && hi2 > 0 && strings.EqualFold(spec.Prop, "R") {
				lo2 = math.Max(lo2/10, 1e-12)
				hi2 *= 10
			} else {
				c := 0.5 * (lo2 + hi2)
				w := hi2 - lo2
				if math.Abs(w) < 1e-15 {
					w = math.Max(math.Abs(c), 1)
				}
				lo2, hi2 = c-2*w, c+2*w
			}
			if s := eval(lo2); s.ok {
				e2lo = s
			}
			if s := eval(hi2); s.ok {
				e2hi = s
			}
		}
	}

	done := func(err, achieved float64) bool {
		tol := math.Max(spec.TolAbs, spec.TolRel*math.Max(1, math.Max(math.Abs(spec.Target), math.Abs(achieved))))
		return math.Abs(err) <= tol
	}
	finish := func(x float64, s sample) GoalSeekResult {
		out.OK = true
		out.Value = x
		out.Achieved = s.measured
		out.Error = s.err
		out.Message = "ok"
		return out
	}

	bestX, best := lo, sLo
	track := func(x float64, s sample) {
		out.History = append(out.History, GoalPoint{x, s.measured})
		if math.Abs(s.err) < math.Abs(best.err) {
			bestX, best = x, s
		}
	}
	if math.Abs(sHi.err) < math.Abs(best.err) {
		bestX, best = hi, sHi
	}

	useBisect := (spec.Method == "auto" || spec.Method == "bisect") && isBracketed
	failReason := "未收敛"

	if useBisect {
		a, b := lo, hi
		fa := sLo.err
		for it := 0; it < spec.MaxIter; it++ {
			out.Iterations = it + 1
			mid := 0.5 * (a + b)
			sm := eval(mid)
			if !sm.ok {
				failReason = "二分过程中求值失败"
				break
			}
			track(mid, sm)
			if done(sm.err, sm.measured) {
				return finish(mid, sm)
			}
			if (fa < 0 && sm.err > 0) || (fa > 0 && sm.err < 0) {
				b = mid
			} else {
				a, fa = mid, sm.err
			}
		}
	} else {
		x0, x1 := lo, hi
		s0, s1 := sLo, sHi
		for it := 0; it < spec.MaxIter; it++ {
			out.Iterations = it + 1
			if s1.err == s0.err {
				failReason = "割线斜率为零"
				break
			}
			x2 := x1 - s1.err*(x1-x0)/(s1.err-s0.err)
			x2 = math.Min(math.Max(x2, lo), hi)
			if math.Abs(x2-x1) <= math.Max(1e-15, 1e-12*math.Max(1, math.Abs(x1))) {
				x2 = 0.5 * (x0 + x1)
			}
			s2 := eval(x2)
			if !s2.ok {
				failReason = "割线过程中求值失败"
				break
			}
			track(x2, s2)
			if done(s2.err, s2.measured) {
				return finish(x2, s2)
			}
			x0, s0 = x1, s1
			x1, s1 = x2, s2
		}
	}

	out.Value = bestX
	out.Achieved = best.measured
	out.Error = best.err
	if spec.Method == "auto" && !isBracketed {
		out.Message = "失败：区间未括住目标"
	} else {
		out.Message = failReason
	}
	return out
}

// measure 按说明取测量值
func measure(res *types.SolveResult, cir *types.Circuit, cfg *types.Config, m Measure) (float64, bool) {
	if m.Node != nil {
		v, ok := res.Voltages[*m.Node]
		if !ok {
			return 0, false
		}
		return applyAbs(v, m.Abs), true
	}
	field := m.Field
	if field == "" {
		field = "Iab"
	}
	if m.Branch != "" && field == "Iab" {
		if br, ok := res.Branches[m.ComponentID]; ok {
			if v, ok := br[m.Branch]; ok {
				return applyAbs(v, m.Abs), true
			}
		}
	}
	comp, ok := cir.Get(m.ComponentID)
	if !ok {
		return 0, false
	}
	mt := ComponentMetrics(res, comp, cfg)
	var v float64
	switch field {
	case "Va":
		v = mt.Va
	case "Vb":
		v = mt.Vb
	case "Vab":
		v = mt.Vab
	case "Iab":
		v = mt.Iab
	case "P":
		v = mt.P
	case "R":
		if !mt.HasR {
			return 0, false
		}
		v = mt.R
	default:
		return 0, false
	}
	return applyAbs(v, m.Abs), true
}

// applyAbs 条件取绝对值
func applyAbs(v float64, abs bool) float64 {
	if abs {
		return math.Abs(v)
	}
	return v
}

// hasFlag 是否存在指定状态标记
func hasFlag(res *types.SolveResult, flag string) bool {
	for _, f := range res.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// isFinite 是否有限数值
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

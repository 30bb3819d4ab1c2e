package voltlab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltlab/types"
)

// seriesCircuit 6V电源 + 20Ω电阻的单回路
func seriesCircuit() (*types.Circuit, string, string) {
	cir := types.NewCircuit()
	sid := cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 6})
	rid := cir.Add(types.TypeResistor, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"R": 20})
	cir.Add(types.TypeWire, types.Pt(6, 0), types.Pt(6, 6), nil)
	cir.Add(types.TypeWire, types.Pt(6, 6), types.Pt(0, 6), nil)
	return cir, sid, rid
}

func TestSeriesCircuit(t *testing.T) {
	cir, sid, rid := seriesCircuit()
	res := Solve(cir, nil)
	require.True(t, res.OK)

	// 地为电源负端，导线合并后电压 {0, 6}
	assert.InDelta(t, 6.0, res.Voltages[types.Pt(0, 0)], 1e-9)
	assert.InDelta(t, 0.0, res.Voltages[types.Pt(0, 6)], 1e-9)
	assert.InDelta(t, 0.0, res.Voltages[types.Pt(6, 0)], 1e-9)
	assert.InDelta(t, 0.0, res.Voltages[types.Pt(6, 6)], 1e-9)
	assert.Equal(t, 0, res.NodeIndex[types.Pt(0, 6)])

	// 回路电流一致，电源电流按 A→B 方向为负
	assert.InDelta(t, 0.3, res.Currents[rid], 1e-9)
	assert.InDelta(t, -0.3, res.Currents[sid], 1e-9)
	assert.Empty(t, res.Warnings)
}

func TestParallelCircuit(t *testing.T) {
	cir := types.NewCircuit()
	sid := cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 5})
	r1 := cir.Add(types.TypeResistor, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"R": 10})
	r2 := cir.Add(types.TypeResistor, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"R": 10})
	cir.Add(types.TypeWire, types.Pt(6, 0), types.Pt(0, 6), nil)

	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.InDelta(t, 0.5, res.Currents[r1], 1e-9)
	assert.InDelta(t, 0.5, res.Currents[r2], 1e-9)
	assert.InDelta(t, 1.0, -res.Currents[sid], 1e-9)
}

func TestInvalidResistorDegradesLocally(t *testing.T) {
	cir, sid, rid := seriesCircuit()
	bad := cir.Add(types.TypeResistor, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"R": -5})

	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnInvalidComponent))
	assert.Equal(t, types.FlagInvalid, res.Flags[bad])
	assert.InDelta(t, 0.0, res.Currents[bad], 1e-12)
	// 其余电路不受影响
	assert.InDelta(t, 0.3, res.Currents[rid], 1e-9)
	assert.InDelta(t, -0.3, res.Currents[sid], 1e-9)
}

func TestFloatingResistor(t *testing.T) {
	cir, _, rid := seriesCircuit()
	floating := cir.Add(types.TypeResistor, types.Pt(20, 20), types.Pt(30, 20), map[string]float64{"R": 10})

	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnDisconnectedNode))

	// 悬空端点不出现在电压表中，编号为-1
	_, ok := res.Voltages[types.Pt(20, 20)]
	assert.False(t, ok)
	assert.Equal(t, -1, res.NodeIndex[types.Pt(20, 20)])
	assert.InDelta(t, 0.0, res.Currents[floating], 1e-12)

	// 主回路仍正确求解
	assert.InDelta(t, 0.3, res.Currents[rid], 1e-9)
	assert.InDelta(t, 6.0, res.Voltages[types.Pt(0, 0)], 1e-9)

	var warned bool
	for _, w := range res.Warnings {
		if w.Kind == types.WarnDisconnectedNode {
			require.NotNil(t, w.Node)
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestShortedSourceIsSingular(t *testing.T) {
	cir := types.NewCircuit()
	cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 5})
	cir.Add(types.TypeWire, types.Pt(0, 0), types.Pt(0, 6), nil)

	res := Solve(cir, nil)
	assert.False(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnSingularSystem))
}

// spdtCircuit 公共端经SPDT分别接入10Ω与20Ω支路
func spdtCircuit(throw float64) (*types.Circuit, string) {
	cir := types.NewCircuit()
	cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 10), map[string]float64{"V": 6})
	swid := cir.Add(types.TypeSwitchSPDT, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{
		"throw": throw, "c_x": 6, "c_y": 2,
	})
	cir.Add(types.TypeResistor, types.Pt(6, 0), types.Pt(0, 10), map[string]float64{"R": 10})
	cir.Add(types.TypeResistor, types.Pt(6, 2), types.Pt(0, 10), map[string]float64{"R": 20})
	return cir, swid
}

func TestSPDTToggle(t *testing.T) {
	cir0, sw0 := spdtCircuit(0)
	res0 := Solve(cir0, nil)
	require.True(t, res0.OK)

	cir1, sw1 := spdtCircuit(1)
	res1 := Solve(cir1, nil)
	require.True(t, res1.OK)

	// 掷位0：t0闭合走10Ω支路，t1断开近乎无电流
	assert.InDelta(t, 0.6, res0.Branches[sw0]["t0"], 1e-3)
	assert.Less(t, res0.Branches[sw0]["t1"], 1e-6)
	assert.InDelta(t, 0.6, res0.Currents[sw0], 1e-3)

	// 掷位1：恰好两条支路闭合/断开互换
	assert.InDelta(t, 0.3, res1.Branches[sw1]["t1"], 1e-3)
	assert.Less(t, res1.Branches[sw1]["t0"], 1e-6)
	assert.InDelta(t, 0.3, res1.Currents[sw1], 1e-3)
}

func TestSolveIdempotent(t *testing.T) {
	cir, _, _ := seriesCircuit()
	cir.Add(types.TypeResistor, types.Pt(20, 20), types.Pt(30, 20), map[string]float64{"R": 10})

	res1 := Solve(cir, nil)
	res2 := Solve(cir, nil)
	assert.Equal(t, res1, res2)
}

func TestEmptyCircuit(t *testing.T) {
	res := Solve(types.NewCircuit(), nil)
	assert.True(t, res.OK)
	assert.Empty(t, res.Voltages)
	assert.Empty(t, res.Warnings)
}

func TestWireOnlyCircuit(t *testing.T) {
	cir := types.NewCircuit()
	wid := cir.Add(types.TypeWire, types.Pt(0, 0), types.Pt(0, 6), nil)

	// 仅有合并类元件时系统维度为0，仍要正常返回
	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.InDelta(t, 0.0, res.Voltages[types.Pt(0, 0)], 1e-18)
	assert.InDelta(t, 0.0, res.Voltages[types.Pt(0, 6)], 1e-18)
	assert.InDelta(t, 0.0, res.Currents[wid], 1e-18)
	assert.Empty(t, res.Warnings)
}

func TestAllInvalidCircuit(t *testing.T) {
	cir := types.NewCircuit()
	bad := cir.Add(types.TypeResistor, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"R": 0})

	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnInvalidComponent))
	assert.Equal(t, types.FlagInvalid, res.Flags[bad])
	assert.InDelta(t, 0.0, res.Currents[bad], 1e-18)
	// 无效支路被剔除后其端点无对地通路
	assert.True(t, res.HasWarning(types.WarnDisconnectedNode))
	assert.Equal(t, -1, res.NodeIndex[types.Pt(6, 0)])
}

func TestNoSourceGroundSelection(t *testing.T) {
	cir := types.NewCircuit()
	cir.Add(types.TypeResistor, types.Pt(3, 4), types.Pt(9, 4), map[string]float64{"R": 10})

	res := Solve(cir, nil)
	require.True(t, res.OK)
	// 无电源时取首个元件的端点A为地
	assert.Equal(t, 0, res.NodeIndex[types.Pt(3, 4)])
	assert.InDelta(t, 0.0, res.Voltages[types.Pt(9, 4)], 1e-12)
}

func TestSourceOvercurrentWarning(t *testing.T) {
	cir := types.NewCircuit()
	sid := cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 5, "Iwarn": 1})
	rid := cir.Add(types.TypeResistor, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"R": 1})
	cir.Add(types.TypeWire, types.Pt(6, 0), types.Pt(0, 6), nil)

	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnShortCircuit))
	assert.Equal(t, types.FlagSourceOvercurrent, res.Flags[sid])
	assert.Equal(t, types.FlagOvercurrent, res.Flags[rid])
}

func TestOpenSwitchWarnsOpenCircuit(t *testing.T) {
	cir := types.NewCircuit()
	cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 5})
	swid := cir.Add(types.TypeSwitchSPST, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"state": 0})
	cir.Add(types.TypeResistor, types.Pt(6, 0), types.Pt(0, 6), map[string]float64{"R": 10})

	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnOpenCircuit))
	assert.Equal(t, types.FlagOpen, res.Flags[swid])
}

func TestGalvanometerOverrange(t *testing.T) {
	cir := types.NewCircuit()
	cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 5})
	gid := cir.Add(types.TypeGalvanometer, types.Pt(0, 0), types.Pt(6, 0), nil)
	cir.Add(types.TypeWire, types.Pt(6, 0), types.Pt(0, 6), nil)

	// 默认线圈50Ω、满偏50µA，0.1A电流远超量程
	res := Solve(cir, nil)
	require.True(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnMeterOverrange))
	assert.Equal(t, types.FlagOverrange, res.Flags[gid])
	assert.InDelta(t, 0.1, res.Currents[gid], 1e-9)
}

func TestVoltmeterBarelyLoads(t *testing.T) {
	cir, _, rid := seriesCircuit()
	vid := cir.Add(types.TypeVoltmeter, types.Pt(0, 0), types.Pt(0, 6), nil)

	res := Solve(cir, nil)
	require.True(t, res.OK)
	// 默认内阻1MΩ，对0.3A主回路几乎无影响
	assert.InDelta(t, 0.3, res.Currents[rid], 1e-4)
	assert.InDelta(t, 6e-6, res.Currents[vid], 1e-7)
}

func TestComponentMetrics(t *testing.T) {
	cir, _, rid := seriesCircuit()
	res := Solve(cir, nil)
	require.True(t, res.OK)

	comp, ok := cir.Get(rid)
	require.True(t, ok)
	m := ComponentMetrics(res, comp, nil)
	assert.InDelta(t, 6.0, m.Vab, 1e-9)
	assert.InDelta(t, 0.3, m.Iab, 1e-9)
	assert.InDelta(t, 1.8, m.P, 1e-9)
	require.True(t, m.HasR)
	assert.InDelta(t, 20.0, m.R, 1e-12)
}

func TestNumericOverflowWarning(t *testing.T) {
	// 主元阈值为0时奇异矩阵不触发换行保护，消元产生非有限解
	cfg := types.DefaultConfig()
	cfg.PivotThreshold = 0

	cir := types.NewCircuit()
	cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 5})
	cir.Add(types.TypeWire, types.Pt(0, 0), types.Pt(0, 6), nil)

	res := Solve(cir, &cfg)
	require.True(t, res.OK)
	assert.True(t, res.HasWarning(types.WarnNumericOverflow))
	assert.False(t, res.HasWarning(types.WarnSingularSystem))
}

func TestConfigOverridesSwitchResistance(t *testing.T) {
	cfg, err := ParseConfig([]byte("switch_open_resistance: 1e6\n"))
	require.NoError(t, err)
	assert.InDelta(t, 1e6, cfg.SwitchOpenR, 1e-6)
	// 未给出的字段保持默认
	assert.InDelta(t, types.DefaultSwitchClosedR, cfg.SwitchClosedR, 1e-18)

	cir := types.NewCircuit()
	cir.Add(types.TypeSocket, types.Pt(0, 0), types.Pt(0, 6), map[string]float64{"V": 5})
	swid := cir.Add(types.TypeSwitchSPST, types.Pt(0, 0), types.Pt(6, 0), map[string]float64{"state": 0})
	cir.Add(types.TypeWire, types.Pt(6, 0), types.Pt(0, 6), nil)

	res := Solve(cir, &cfg)
	require.True(t, res.OK)
	assert.InDelta(t, 5e-6, res.Currents[swid], 1e-9)
}

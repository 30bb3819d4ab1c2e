package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltlab/types"
)

func testConfig() *types.Config {
	cfg := types.DefaultConfig()
	return &cfg
}

func comp(t types.ComponentType, props map[string]float64) *types.Component {
	return types.NewComponent(t, types.Pt(0, 0), types.Pt(2, 0), props)
}

func TestResolveWire(t *testing.T) {
	b := Resolve(comp(types.TypeWire, nil), testConfig())
	assert.Equal(t, KindMerge, b.Kind)
}

func TestResolveResistor(t *testing.T) {
	b := Resolve(comp(types.TypeResistor, map[string]float64{"R": 20}), testConfig())
	require.Equal(t, KindBranch, b.Kind)
	assert.InDelta(t, 20.0, b.R, 1e-12)

	// 未给属性时取默认100Ω
	b = Resolve(comp(types.TypeResistor, nil), testConfig())
	assert.InDelta(t, 100.0, b.R, 1e-12)
}

func TestResolveResistorInvalid(t *testing.T) {
	for _, r := range []float64{0, -5} {
		b := Resolve(comp(types.TypeResistor, map[string]float64{"R": r}), testConfig())
		assert.Equal(t, KindInvalid, b.Kind)
		assert.Error(t, b.Err)
	}
}

func TestResolveBulb(t *testing.T) {
	// R = Vr²/Wr
	b := Resolve(comp(types.TypeBulb, map[string]float64{"Vr": 6, "Wr": 3}), testConfig())
	require.Equal(t, KindBranch, b.Kind)
	assert.InDelta(t, 12.0, b.R, 1e-12)

	b = Resolve(comp(types.TypeBulb, map[string]float64{"Wr": 0}), testConfig())
	assert.Equal(t, KindInvalid, b.Kind)

	// 极端额定值被钳到电阻下限
	b = Resolve(comp(types.TypeBulb, map[string]float64{"Vr": 1e-6, "Wr": 100}), testConfig())
	require.Equal(t, KindBranch, b.Kind)
	assert.InDelta(t, types.DefaultMinResistance, b.R, 1e-18)
}

func TestResolveRheostatClamp(t *testing.T) {
	cfg := testConfig()

	b := Resolve(comp(types.TypeRheostat, map[string]float64{"R": 30, "Rmin": 10, "Rmax": 50}), cfg)
	require.Equal(t, KindBranch, b.Kind)
	assert.InDelta(t, 30.0, b.R, 1e-12)

	b = Resolve(comp(types.TypeRheostat, map[string]float64{"R": 5, "Rmin": 10, "Rmax": 50}), cfg)
	assert.InDelta(t, 10.0, b.R, 1e-12)

	b = Resolve(comp(types.TypeRheostat, map[string]float64{"R": 500, "Rmin": 10, "Rmax": 50}), cfg)
	assert.InDelta(t, 50.0, b.R, 1e-12)

	// 上下限颠倒时互换
	b = Resolve(comp(types.TypeRheostat, map[string]float64{"R": 30, "Rmin": 50, "Rmax": 10}), cfg)
	assert.InDelta(t, 30.0, b.R, 1e-12)

	b = Resolve(comp(types.TypeRheostat, map[string]float64{"R": -1}), cfg)
	assert.Equal(t, KindInvalid, b.Kind)
}

func TestResolveSocket(t *testing.T) {
	b := Resolve(comp(types.TypeSocket, map[string]float64{"V": 6}), testConfig())
	require.Equal(t, KindSource, b.Kind)
	assert.InDelta(t, 6.0, b.V, 1e-12)
	assert.InDelta(t, types.DefaultSourceIwarn, b.WarnCurrent, 1e-12)

	b = Resolve(comp(types.TypeSocket, map[string]float64{"Iwarn": 2}), testConfig())
	assert.InDelta(t, 5.0, b.V, 1e-12)
	assert.InDelta(t, 2.0, b.WarnCurrent, 1e-12)
}

func TestResolveSwitchSPST(t *testing.T) {
	cfg := testConfig()

	b := Resolve(comp(types.TypeSwitchSPST, nil), cfg)
	require.Equal(t, KindBranch, b.Kind)
	assert.InDelta(t, cfg.SwitchClosedR, b.R, 1e-18)

	b = Resolve(comp(types.TypeSwitchSPST, map[string]float64{"state": 0}), cfg)
	assert.InDelta(t, cfg.SwitchOpenR, b.R, 1e-3)
}

func TestResolveSwitchSPDTExpands(t *testing.T) {
	b := Resolve(comp(types.TypeSwitchSPDT, nil), testConfig())
	assert.Equal(t, KindExpand, b.Kind)
}

func TestResolveUnknownType(t *testing.T) {
	b := Resolve(comp(types.ComponentType("thermistor"), nil), testConfig())
	assert.Equal(t, KindInvalid, b.Kind)
}

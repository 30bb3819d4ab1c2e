package types

// 默认参数常量定义
const (
	DefaultSwitchClosedR  = 1e-6 // 开关闭合电阻
	DefaultSwitchOpenR    = 1e9  // 开关断开电阻
	DefaultNearShortR     = 1e-9 // 近似短路电阻下限
	DefaultMinResistance  = 1e-6 // 有源支路电阻下限
	DefaultPivotThreshold = 1e-12
	DefaultSourceIwarn    = 5.0  // 电源告警电流
	DefaultOpenCurrent    = 1e-6 // 断路判定电流
	DefaultOverrange      = 1.0  // 仪表超量程系数
	DefaultSparseCutover  = 64   // 稀疏求解启用维度
)

// Config 求解参数。所有全局常量在此显式配置，避免散落的字面量。
type Config struct {
	SwitchClosedR   float64 `yaml:"switch_closed_resistance"` // 开关闭合电阻
	SwitchOpenR     float64 `yaml:"switch_open_resistance"`   // 开关断开电阻
	NearShortR      float64 `yaml:"near_short_resistance"`    // 近似短路电阻下限
	MinResistance   float64 `yaml:"min_resistance"`           // 电阻类支路下限
	PivotThreshold  float64 `yaml:"pivot_threshold"`          // 奇异判定主元阈值
	SourceIwarn     float64 `yaml:"source_warn_current"`      // 电源默认告警电流
	OpenCurrent     float64 `yaml:"open_circuit_current"`     // 断路判定电流
	OverrangeFactor float64 `yaml:"meter_overrange_factor"`   // 仪表超量程系数
	SparseCutover   int     `yaml:"sparse_cutover"`           // 超过该维度改用稀疏求解
}

// DefaultConfig 默认求解参数
func DefaultConfig() Config {
	return Config{
		SwitchClosedR:   DefaultSwitchClosedR,
		SwitchOpenR:     DefaultSwitchOpenR,
		NearShortR:      DefaultNearShortR,
		MinResistance:   DefaultMinResistance,
		PivotThreshold:  DefaultPivotThreshold,
		SourceIwarn:     DefaultSourceIwarn,
		OpenCurrent:     DefaultOpenCurrent,
		OverrangeFactor: DefaultOverrange,
		SparseCutover:   DefaultSparseCutover,
	}
}

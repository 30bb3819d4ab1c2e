package types

// WarningKind 告警类型
type WarningKind string

// 告警类型常量定义
const (
	WarnInvalidComponent WarningKind = "invalid_component" // 元件属性非法
	WarnDisconnectedNode WarningKind = "disconnected_node" // 节点无对地通路
	WarnSingularSystem   WarningKind = "singular_system"   // 系统矩阵奇异
	WarnNumericOverflow  WarningKind = "numeric_overflow"  // 求解值非有限
	WarnShortCircuit     WarningKind = "short_circuit"     // 支路电流超安全阈值
	WarnOpenCircuit      WarningKind = "open_circuit"      // 电源近乎无输出电流
	WarnMeterOverrange   WarningKind = "meter_overrange"   // 仪表超量程
)

// Warning 结构化告警记录
type Warning struct {
	Kind        WarningKind // 告警类型
	ComponentID string      // 关联元件（可为空）
	Node        *Point      // 关联节点（可为空）
	Message     string      // 说明
}

// 元件状态标记
const (
	FlagInvalid           = "invalid"
	FlagOpen              = "open"
	FlagSourceOvercurrent = "source_overcurrent"
	FlagOvercurrent       = "overcurrent"
	FlagOverrange         = "overrange"
)

// SolveResult 一次求解的完整结果，全部字段为快照值
type SolveResult struct {
	OK        bool                          // 求解是否成功
	Voltages  map[Point]float64             // 端点电压（无对地通路的端点不出现）
	NodeIndex map[Point]int                 // 端点所属节点编号（地为0，未入系统为-1）
	Currents  map[string]float64            // 元件电流，正方向 A→B
	Branches  map[string]map[string]float64 // 多掷开关各支路电流
	Flags     map[string]string             // 元件状态标记
	Warnings  []Warning                     // 告警列表
}

// NewSolveResult 初始化
func NewSolveResult() *SolveResult {
	return &SolveResult{
		Voltages:  make(map[Point]float64),
		NodeIndex: make(map[Point]int),
		Currents:  make(map[string]float64),
		Branches:  make(map[string]map[string]float64),
		Flags:     make(map[string]string),
	}
}

// Warn 追加告警
func (r *SolveResult) Warn(w Warning) { r.Warnings = append(r.Warnings, w) }

// HasWarning 是否存在指定类型告警
func (r *SolveResult) HasWarning(kind WarningKind) bool {
	for _, w := range r.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

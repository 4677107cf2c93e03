package label

import "fmt"

// Status 是组件生命周期中的状态，取值与上游表格中的选项文本一致。
type Status string

const (
	StatusFeasibility        Status = "Feasibility"
	StatusDesignInProgress   Status = "Design in progress"
	StatusReadyForProduction Status = "Ready for production"
	StatusManufactured       Status = "Manufactured"
	StatusInTransit          Status = "In transit"
	StatusReceivedOnSite     Status = "Received on site"
	StatusInstalled          Status = "Installed"
	StatusInUse              Status = "In use"
)

// 生命周期顺序；Feasibility 不在正式流程中，排在最前。
var statusOrder = map[Status]int{
	StatusFeasibility:        0,
	StatusDesignInProgress:   1,
	StatusReadyForProduction: 2,
	StatusManufactured:       3,
	StatusInTransit:          4,
	StatusReceivedOnSite:     5,
	StatusInstalled:          6,
	StatusInUse:              7,
}

// ParseStatus 把上游文本映射为 Status，未知文本返回错误。
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusOrder[st]; !ok {
		return "", fmt.Errorf("无效的组件状态: %q", s)
	}
	return st, nil
}

// Labelable 报告该状态下是否应该打印标签：设计完成、可以生产之后才需要。
func (s Status) Labelable() bool {
	return statusOrder[s] >= statusOrder[StatusReadyForProduction]
}

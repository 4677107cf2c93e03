// Package label 定义标签渲染的输入模型与错误分类。
//
// Input 由上游的转换层（见 records 包）逐次构造，渲染器只依赖这里的窄结构，
// 不感知上游记录的字段布局。
package label

import (
	"bytes"
	"image"
	_ "image/png"
	"strconv"
	"strings"
	"time"
)

// Supplier 表示参与生产的供应商。
type Supplier struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Input 是一次标签渲染需要的全部数据。
type Input struct {
	UID            string     `json:"uid"`
	OrderReference string     `json:"orderReference"`
	QRImage        []byte     `json:"-"` // PNG
	MassKg         *float64   `json:"massKg,omitempty"`
	ProducedAt     int64      `json:"producedAt"` // Unix 秒
	Suppliers      []Supplier `json:"suppliers"`
}

// Validate 在绘制前检查必需字段，返回第一个缺失项。
func (in Input) Validate() error {
	if strings.TrimSpace(in.UID) == "" {
		return Missing("uid", "组件 UID 为空")
	}
	if strings.TrimSpace(in.OrderReference) == "" {
		return Missing("orderReference", "组件 "+in.UID+" 没有订单编号")
	}
	if len(in.QRImage) == 0 {
		return Missing("qrImage", "组件 "+in.UID+" 没有二维码图片")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(in.QRImage)); err != nil {
		return Missing("qrImage", "二维码图片无法解码: "+err.Error())
	}
	if len(in.Suppliers) == 0 {
		return Missing("suppliers", "订单 "+in.OrderReference+" 没有供应商")
	}
	return nil
}

// MassText 返回重量行的文本，例如 "12.5 kg"；没有重量时 ok 为 false。
func (in Input) MassText() (string, bool) {
	if in.MassKg == nil {
		return "", false
	}
	return strconv.FormatFloat(*in.MassKg, 'f', -1, 64) + " kg", true
}

// DateText 以 UTC 的 YYYY-MM-DD 形式返回生产日期。
func (in Input) DateText() string {
	return time.Unix(in.ProducedAt, 0).UTC().Format("2006-01-02")
}

// Mass 是构造 MassKg 的便捷函数。
func Mass(kg float64) *float64 { return &kg }

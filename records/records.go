// Package records 把上游数据表中的组件、订单与供应商记录转换为 label.Input。
//
// 上游记录通过 Source 按 ID 查询；Memory 是进程内实现，Cached 为任意 Source
// 加上 TTL 缓存。
package records

import (
	"context"
	"errors"
	"time"

	"github.com/materialpassport/passport/label"
)

// ErrNotFound 表示按 ID 查询的记录不存在。
var ErrNotFound = errors.New("records: 记录不存在")

// Component 是上游的组件记录。
type Component struct {
	ID             string
	UID            string
	OrderRecordIDs []string
	MassKg         *float64
	CreatedAt      time.Time
	QRCodePNG      []byte
	HasLabel       bool
	Status         label.Status
}

// Order 是上游的订单记录。
type Order struct {
	ID          string
	Reference   string
	SupplierIDs []string
}

// Supplier 是上游的供应商记录。
type Supplier struct {
	ID       string
	Name     string
	Location string
}

// Source 按 ID 查询订单与供应商，记录不存在时返回 ErrNotFound。
type Source interface {
	Order(ctx context.Context, id string) (Order, error)
	Supplier(ctx context.Context, id string) (Supplier, error)
}

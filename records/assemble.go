package records

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/materialpassport/passport/label"
)

// Assemble 查询组件所属订单及其供应商，生成已校验的 label.Input。
// qr 非空时优先使用，否则使用组件上保存的二维码。
// 单个供应商查询失败只记录警告并跳过；一个都查不到时返回 MissingDataError。
func Assemble(ctx context.Context, src Source, c Component, qr []byte, log *zap.Logger) (label.Input, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(c.OrderRecordIDs) == 0 {
		return label.Input{}, label.Missing("order", "组件 "+c.UID+" 没有关联订单")
	}
	orderID := c.OrderRecordIDs[0]
	order, err := src.Order(ctx, orderID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return label.Input{}, ctxErr
		}
		if errors.Is(err, ErrNotFound) {
			return label.Input{}, label.Missing("order", "找不到订单 "+orderID)
		}
		return label.Input{}, err
	}

	if len(qr) == 0 {
		qr = c.QRCodePNG
	}
	if c.CreatedAt.IsZero() {
		return label.Input{}, label.Missing("createdAt", "组件 "+c.UID+" 没有创建时间")
	}

	suppliers := make([]label.Supplier, 0, len(order.SupplierIDs))
	for _, id := range order.SupplierIDs {
		s, err := src.Supplier(ctx, id)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return label.Input{}, ctxErr
			}
			log.Warn("skipping supplier",
				zap.String("uid", c.UID),
				zap.String("order", order.Reference),
				zap.String("supplier_id", id),
				zap.Error(err))
			continue
		}
		suppliers = append(suppliers, label.Supplier{Name: s.Name, Location: s.Location})
	}

	in := label.Input{
		UID:            c.UID,
		OrderReference: order.Reference,
		QRImage:        qr,
		MassKg:         c.MassKg,
		ProducedAt:     c.CreatedAt.Unix(),
		Suppliers:      suppliers,
	}
	if err := in.Validate(); err != nil {
		return label.Input{}, err
	}
	return in, nil
}

package manifest

import (
	"fmt"
	"math"
	"time"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/materialpassport/passport/label"
	"github.com/materialpassport/passport/records"
)

// Records 检查清单的语义并转换为 records.Memory。组件按声明顺序保存。
// 重复声明、未知字段、类型不符以及引用未声明的订单或供应商都会返回带行列号的错误。
func (d *Document) Records() (*records.Memory, error) {
	mem := records.NewMemory()
	suppliers := map[string]bool{}
	orders := map[string]bool{}
	uids := map[string]bool{}

	// 先收集供应商与订单，组件可以引用在它之后声明的订单。
	for _, e := range d.Entries {
		switch {
		case e.Supplier != nil:
			s, err := e.Supplier.record()
			if err != nil {
				return nil, err
			}
			if suppliers[s.ID] {
				return nil, posError(e.Supplier.Pos, "供应商 %s 重复声明", s.ID)
			}
			suppliers[s.ID] = true
			mem.PutSupplier(s)
		case e.Order != nil:
			if orders[e.Order.ID] {
				return nil, posError(e.Order.Pos, "订单 %s 重复声明", e.Order.ID)
			}
			orders[e.Order.ID] = true
		}
	}
	for _, e := range d.Entries {
		if e.Order == nil {
			continue
		}
		o, err := e.Order.record(suppliers)
		if err != nil {
			return nil, err
		}
		mem.PutOrder(o)
	}
	for _, e := range d.Entries {
		if e.Component == nil {
			continue
		}
		c, err := e.Component.record(orders)
		if err != nil {
			return nil, err
		}
		if uids[c.UID] {
			return nil, posError(e.Component.Pos, "组件 %s 重复声明", c.UID)
		}
		uids[c.UID] = true
		mem.AddComponent(c)
	}
	return mem, nil
}

func (s *SupplierDecl) record() (records.Supplier, error) {
	out := records.Supplier{ID: s.ID}
	for _, f := range s.Block.fields() {
		var err error
		switch f.Key {
		case "name":
			out.Name, err = f.str()
		case "location":
			out.Location, err = f.str()
		default:
			err = f.unknown()
		}
		if err != nil {
			return records.Supplier{}, err
		}
	}
	if out.Name == "" {
		return records.Supplier{}, posError(s.Pos, "供应商 %s 缺少 name", s.ID)
	}
	return out, nil
}

func (o *OrderDecl) record(suppliers map[string]bool) (records.Order, error) {
	out := records.Order{ID: o.ID}
	for _, f := range o.Block.fields() {
		var err error
		switch f.Key {
		case "ref":
			out.Reference, err = f.str()
		case "suppliers":
			out.SupplierIDs, err = f.list()
			for _, id := range out.SupplierIDs {
				if err == nil && !suppliers[id] {
					err = posError(f.Pos, "订单 %s 引用了未声明的供应商 %s", o.ID, id)
				}
			}
		default:
			err = f.unknown()
		}
		if err != nil {
			return records.Order{}, err
		}
	}
	return out, nil
}

func (c *ComponentDecl) record(orders map[string]bool) (records.Component, error) {
	out := records.Component{ID: string(c.UID), UID: string(c.UID)}
	for _, f := range c.Block.fields() {
		var err error
		switch f.Key {
		case "order":
			var id string
			if id, err = f.ident(); err == nil {
				if !orders[id] {
					err = posError(f.Pos, "组件 %s 引用了未声明的订单 %s", c.UID, id)
				}
				out.OrderRecordIDs = append(out.OrderRecordIDs, id)
			}
		case "mass":
			var v float64
			if v, err = f.number(); err == nil {
				if v < 0 {
					err = posError(f.Pos, "mass 不能为负数")
				}
				out.MassKg = label.Mass(v)
			}
		case "created":
			var v float64
			if v, err = f.number(); err == nil {
				out.CreatedAt = time.Unix(int64(math.Round(v)), 0).UTC()
			}
		case "status":
			var s string
			if s, err = f.str(); err == nil {
				out.Status, err = label.ParseStatus(s)
				if err != nil {
					err = posError(f.Pos, "%v", err)
				}
			}
		case "labelled":
			var v string
			if v, err = f.ident(); err == nil {
				switch v {
				case "true":
					out.HasLabel = true
				case "false":
				default:
					err = posError(f.Pos, "labelled 只能是 true 或 false")
				}
			}
		default:
			err = f.unknown()
		}
		if err != nil {
			return records.Component{}, err
		}
	}
	return out, nil
}

func (b *Block) fields() []*Field {
	if b == nil {
		return nil
	}
	return b.Fields
}

func (f *Field) str() (string, error) {
	if f.Value == nil || f.Value.String == nil {
		return "", f.mismatch("string")
	}
	return string(*f.Value.String), nil
}

func (f *Field) number() (float64, error) {
	if f.Value == nil || f.Value.Number == nil {
		return 0, f.mismatch("number")
	}
	return *f.Value.Number, nil
}

func (f *Field) ident() (string, error) {
	if f.Value == nil || f.Value.Ident == nil {
		return "", f.mismatch("identifier")
	}
	return *f.Value.Ident, nil
}

func (f *Field) list() ([]string, error) {
	if f.Value == nil || f.Value.List == nil {
		return nil, f.mismatch("list")
	}
	return f.Value.List.Items, nil
}

func (f *Field) mismatch(want string) error {
	return posError(f.Pos, "%s 应为 %s，实际为 %s", f.Key, want, f.Value.Kind())
}

func (f *Field) unknown() error {
	return posError(f.Pos, "未知字段 %s", f.Key)
}

func posError(pos lexer.Position, format string, args ...any) error {
	return fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}

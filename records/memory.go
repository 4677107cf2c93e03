package records

import (
	"context"
	"fmt"
	"sync"
)

// Memory 是进程内的 Source，可并发读写。
type Memory struct {
	mu         sync.RWMutex
	orders     map[string]Order
	suppliers  map[string]Supplier
	components []Component
}

// NewMemory 创建空的 Memory。
func NewMemory() *Memory {
	return &Memory{
		orders:    map[string]Order{},
		suppliers: map[string]Supplier{},
	}
}

// PutOrder 写入或覆盖一个订单。
func (m *Memory) PutOrder(o Order) {
	m.mu.Lock()
	m.orders[o.ID] = o
	m.mu.Unlock()
}

// PutSupplier 写入或覆盖一个供应商。
func (m *Memory) PutSupplier(s Supplier) {
	m.mu.Lock()
	m.suppliers[s.ID] = s
	m.mu.Unlock()
}

// AddComponent 追加一个组件，保持插入顺序。
func (m *Memory) AddComponent(c Component) {
	m.mu.Lock()
	m.components = append(m.components, c)
	m.mu.Unlock()
}

// Components 按插入顺序返回全部组件的副本。
func (m *Memory) Components() []Component {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Component, len(m.components))
	copy(out, m.components)
	return out
}

func (m *Memory) Order(ctx context.Context, id string) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}
	m.mu.RLock()
	o, ok := m.orders[id]
	m.mu.RUnlock()
	if !ok {
		return Order{}, fmt.Errorf("订单 %s: %w", id, ErrNotFound)
	}
	return o, nil
}

func (m *Memory) Supplier(ctx context.Context, id string) (Supplier, error) {
	if err := ctx.Err(); err != nil {
		return Supplier{}, err
	}
	m.mu.RLock()
	s, ok := m.suppliers[id]
	m.mu.RUnlock()
	if !ok {
		return Supplier{}, fmt.Errorf("供应商 %s: %w", id, ErrNotFound)
	}
	return s, nil
}

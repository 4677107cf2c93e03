package layout

// Cursor 记录页面上下一个可用的纵向位置（pt）。
// 不做越界检查，是否超出页面由调用方判断。
type Cursor struct {
	y float64
}

// NewCursor 从 y 开始。
func NewCursor(y float64) *Cursor { return &Cursor{y: y} }

// Advance 将位置下移 delta + gap；gap 可以为负，用于收紧间距。
func (c *Cursor) Advance(delta, gap float64) { c.y += delta + gap }

// Y 返回当前位置。
func (c *Cursor) Y() float64 { return c.y }

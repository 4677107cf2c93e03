package layout

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/materialpassport/passport/label"
)

func minimalInput(t *testing.T) label.Input {
	return label.Input{
		UID:            "MP-000001",
		OrderReference: "ABC123",
		QRImage:        testPNG(t),
		MassKg:         label.Mass(12.5),
		ProducedAt:     1700000000,
		Suppliers:      []label.Supplier{{Name: "Acme Fabrication", Location: "Leeds, UK"}},
	}
}

func compose(t *testing.T, in label.Input) *Result {
	t.Helper()
	res, err := Compose(in, Options{Metrics: fakeMetrics{}})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return res
}

func TestComposeMinimal(t *testing.T) {
	res := compose(t, minimalInput(t))

	if res.Meta.Title != "MP-000001" {
		t.Fatalf("title = %q, want MP-000001", res.Meta.Title)
	}
	if res.Meta.Author != DefaultAuthor {
		t.Fatalf("author = %q, want %q", res.Meta.Author, DefaultAuthor)
	}
	heading := res.Page.TextsByRole(RoleHeading)
	if len(heading) != 1 || heading[0].Y != MarginY || heading[0].Content != "MP-000001" {
		t.Fatalf("unexpected heading: %+v", heading)
	}
	if len(res.Page.Images) != 1 || res.Page.Images[0].Width != ColumnWidth || res.Page.Images[0].Fit != "cover" {
		t.Fatalf("unexpected qr box: %+v", res.Page.Images)
	}
	if x := res.Page.Images[0].X; math.Abs(x+ColumnWidth/2-res.Page.Width/2) > 1e-9 {
		t.Fatalf("qr not centered: x=%g", x)
	}
	if len(res.Page.Graphics) != 1 || res.Page.Graphics[0].Height != LogoHeight {
		t.Fatalf("unexpected logo box: %+v", res.Page.Graphics)
	}
	if len(res.Page.Lines) != 1 || res.Page.Lines[0].X1 != MarginX || res.Page.Lines[0].X2 != res.Page.Width-MarginX {
		t.Fatalf("unexpected separator: %+v", res.Page.Lines)
	}

	values := res.Page.TextsByRole(RoleRowValue)
	if len(values) != 2 || values[0].Content != "12.5 kg" || values[1].Content != "2023-11-14" {
		t.Fatalf("unexpected row values: %+v", values)
	}
	for _, v := range values {
		if right := v.X + v.Width; math.Abs(right-(res.Page.Width-MarginX)) > 1e-9 {
			t.Fatalf("value %q not right aligned: right edge %g", v.Content, right)
		}
	}
	if res.Omitted != 0 {
		t.Fatalf("unexpected omitted suppliers: %d", res.Omitted)
	}
}

// TestComposeOrderFollowsLogo 验证各元素自上而下依次排列。
func TestComposeOrderFollowsLogo(t *testing.T) {
	res := compose(t, minimalInput(t))
	heading := res.Page.TextsByRole(RoleHeading)[0]
	qr := res.Page.Images[0]
	logo := res.Page.Graphics[0]
	order := res.Page.TextsByRole(RoleOrderReference)[0]
	rule := res.Page.Lines[0]

	if !(heading.Y < qr.Y && qr.Y < logo.Y && logo.Y < order.Y && order.Bottom() < rule.Y1) {
		t.Fatalf("elements out of order: heading=%g qr=%g logo=%g order=%g rule=%g",
			heading.Y, qr.Y, logo.Y, order.Y, rule.Y1)
	}
	if order.FontSize != OrderReferenceMax {
		t.Fatalf("short order reference should keep max size, got %g", order.FontSize)
	}
}

func TestComposeShrinksLongOrderReference(t *testing.T) {
	in := minimalInput(t)
	in.OrderReference = strings.Repeat("R", 40)
	order := compose(t, in).Page.TextsByRole(RoleOrderReference)[0]
	// 40 个字符 × 0.5 × 8pt = 160pt，正好放下
	if order.FontSize != 8 {
		t.Fatalf("expected font size 8, got %g", order.FontSize)
	}
}

func TestComposeWeightRow(t *testing.T) {
	in := minimalInput(t)
	in.MassKg = nil
	res := compose(t, in)
	for _, tb := range res.Page.TextsByRole(RoleRowLabel) {
		if tb.Content == "WEIGHT:" {
			t.Fatalf("weight row must be omitted when mass is absent")
		}
	}

	in.MassKg = label.Mass(40)
	res = compose(t, in)
	count := 0
	for _, tb := range res.Page.TextsByRole(RoleRowLabel) {
		if tb.Content == "WEIGHT:" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one weight row, got %d", count)
	}
	if got := res.Page.TextsByRole(RoleRowValue)[0].Content; got != "40 kg" {
		t.Fatalf("mass text = %q, want \"40 kg\"", got)
	}
}

func TestComposeRejectsMissingData(t *testing.T) {
	cases := map[string]func(*label.Input){
		"no suppliers": func(in *label.Input) { in.Suppliers = nil },
		"no qr":        func(in *label.Input) { in.QRImage = nil },
		"bad qr":       func(in *label.Input) { in.QRImage = []byte("not a png") },
		"no order":     func(in *label.Input) { in.OrderReference = "" },
		"no uid":       func(in *label.Input) { in.UID = " " },
	}
	for name, mutate := range cases {
		in := minimalInput(t)
		mutate(&in)
		_, err := Compose(in, Options{Metrics: fakeMetrics{}})
		if !errors.Is(err, label.ErrMissingData) {
			t.Fatalf("%s: expected missing data error, got %v", name, err)
		}
	}
}

func TestComposeRequiresMetrics(t *testing.T) {
	if _, err := Compose(minimalInput(t), Options{}); err == nil {
		t.Fatalf("expected error without metrics")
	}
}

// assertSuppliersDoNotOverlap 验证每个供应商块都从上一个块的底边之下开始。
func assertSuppliersDoNotOverlap(t *testing.T, res *Result) {
	t.Helper()
	var blocks []TextBox
	for _, tb := range res.Page.Texts {
		if tb.Role == RoleSupplierName || tb.Role == RoleSupplierLocation {
			blocks = append(blocks, tb)
		}
	}
	labels := res.Page.TextsByRole(RoleRowLabel)
	produced := labels[len(labels)-1]
	if produced.Content != "PRODUCED BY:" {
		t.Fatalf("last row label = %q", produced.Content)
	}
	prevBottom := produced.Bottom()
	for i, b := range blocks {
		if b.Y < prevBottom {
			t.Fatalf("block %d (%q) starts at %g, above previous bottom %g", i, b.Content, b.Y, prevBottom)
		}
		if b.Height <= 0 {
			t.Fatalf("block %d has no height", i)
		}
		prevBottom = b.Bottom()
	}
}

func TestComposeSuppliersDoNotOverlap(t *testing.T) {
	long := strings.Repeat("Prefabricated Timber Cassette Manufacturing ", 3)
	cases := map[string][]label.Supplier{
		"one": {{Name: "Acme Fabrication", Location: "Leeds, UK"}},
		"two": {
			{Name: "Acme Fabrication", Location: "Leeds, UK"},
			{Name: "Open Systems Lab", Location: "London, UK"},
		},
		"long name": {
			{Name: "Acme Fabrication", Location: "Leeds, UK"},
			{Name: long, Location: "Unit 4, Industrial Estate, Somewhere Far Away, Yorkshire, UK"},
		},
		"long first name": {
			{Name: long[:44], Location: "Leeds, UK"},
			{Name: "Open Systems Lab", Location: "London, UK"},
		},
	}
	for name, suppliers := range cases {
		in := minimalInput(t)
		in.Suppliers = suppliers
		res := compose(t, in)
		assertSuppliersDoNotOverlap(t, res)
		if got := len(res.Page.TextsByRole(RoleSupplierName)); got != len(suppliers) {
			t.Fatalf("%s: expected %d supplier names, got %d", name, len(suppliers), got)
		}
	}
}

func TestComposeLongNameWraps(t *testing.T) {
	in := minimalInput(t)
	in.Suppliers = []label.Supplier{{Name: strings.Repeat("N", 100), Location: "Leeds, UK"}}
	name := compose(t, in).Page.TextsByRole(RoleSupplierName)[0]
	if len(name.Lines) < 2 {
		t.Fatalf("expected wrapped supplier name, got %d lines", len(name.Lines))
	}
	if want := float64(len(name.Lines)) * SupplierNameSize * 1.2; math.Abs(name.Height-want) > 1e-9 {
		t.Fatalf("height %g does not match %d lines", name.Height, len(name.Lines))
	}
}

// TestComposeOmitsSuppliersPastBottom 供应商过多时，放不下的供应商被省略，页面仍只有一页。
func TestComposeOmitsSuppliersPastBottom(t *testing.T) {
	in := minimalInput(t)
	in.Suppliers = nil
	for i := 0; i < 30; i++ {
		in.Suppliers = append(in.Suppliers, label.Supplier{Name: "Supplier", Location: "Somewhere"})
	}
	res := compose(t, in)
	names := res.Page.TextsByRole(RoleSupplierName)
	if res.Omitted == 0 {
		t.Fatalf("expected omitted suppliers")
	}
	if len(names)+res.Omitted != 30 {
		t.Fatalf("drawn %d + omitted %d != 30", len(names), res.Omitted)
	}
	bottom := res.Page.Height - MarginY
	for i, n := range names[1:] {
		if n.Y+n.Lines[0].Height > bottom {
			t.Fatalf("supplier %d starts past the bottom margin: y=%g", i+1, n.Y)
		}
	}
	assertSuppliersDoNotOverlap(t, res)
}

// TestComposeKeepsLongFirstSupplier 第一个供应商即使越过边距也必须绘制。
func TestComposeKeepsLongFirstSupplier(t *testing.T) {
	in := minimalInput(t)
	in.Suppliers = []label.Supplier{{Name: strings.Repeat("Very Long Supplier Name ", 20), Location: "Leeds, UK"}}
	res := compose(t, in)
	names := res.Page.TextsByRole(RoleSupplierName)
	if len(names) != 1 || res.Omitted != 0 {
		t.Fatalf("first supplier must always be drawn: names=%d omitted=%d", len(names), res.Omitted)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	in := minimalInput(t)
	a := compose(t, in)
	b := compose(t, in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("compose is not deterministic")
	}
	if in.Suppliers[0].Name != "Acme Fabrication" {
		t.Fatalf("input mutated")
	}
}

// TestComposeSupplierBlocksUseColumnWidth 供应商块从左边距开始，按中央列宽折行并右对齐。
func TestComposeSupplierBlocksUseColumnWidth(t *testing.T) {
	in := minimalInput(t)
	in.Suppliers = []label.Supplier{{Name: strings.Repeat("N", 58), Location: "Leeds, UK"}}
	res := compose(t, in)
	name := res.Page.TextsByRole(RoleSupplierName)[0]
	location := res.Page.TextsByRole(RoleSupplierLocation)[0]
	for _, tb := range []TextBox{name, location} {
		if tb.X != MarginX || tb.Width != ColumnWidth || tb.Align != "right" {
			t.Fatalf("%s box: x=%g width=%g align=%q", tb.Role, tb.X, tb.Width, tb.Align)
		}
		for _, ln := range tb.Lines {
			if ln.Width > ColumnWidth+1e-9 {
				t.Fatalf("%s line %q is %g wide", tb.Role, ln.Content, ln.Width)
			}
		}
	}
	// 11pt 下每个字符 5.5pt，160pt 可容纳 29 个字符：58 个字符正好两行。
	if len(name.Lines) != 2 {
		t.Fatalf("expected 2 lines at column width, got %d", len(name.Lines))
	}
}

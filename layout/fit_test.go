package layout

import (
	"math"
	"strings"
	"testing"
)

func TestCursorAdvance(t *testing.T) {
	c := NewCursor(20)
	c.Advance(28.8, -5)
	c.Advance(160, -5)
	if got, want := c.Y(), 198.8; math.Abs(got-want) > 1e-9 {
		t.Fatalf("cursor Y = %g, want %g", got, want)
	}
	c.Advance(0, 5)
	if got, want := c.Y(), 203.8; math.Abs(got-want) > 1e-9 {
		t.Fatalf("cursor Y = %g, want %g", got, want)
	}
}

// TestFitFontSizeIsMaximal 验证返回的字号能放下文本，且再大一号就放不下。
func TestFitFontSizeIsMaximal(t *testing.T) {
	m := fakeMetrics{}
	texts := []string{"ABC123", "ORDER-2024-0001", "A VERY LONG ORDER REFERENCE 0000042", "X"}
	widths := []float64{40, 80, 120, 160}
	const maxSize = 15.0
	for _, text := range texts {
		for _, width := range widths {
			size, err := FitFontSize(m, FontRegular, text, width, maxSize)
			if err != nil {
				t.Fatalf("FitFontSize(%q, %g): %v", text, width, err)
			}
			if size < MinFontSize || size > maxSize {
				t.Fatalf("FitFontSize(%q, %g) = %g out of range", text, width, size)
			}
			if size == MinFontSize {
				continue
			}
			w, _ := m.TextWidth(text, FontRegular, size)
			if w > width {
				t.Fatalf("%q at %gpt is %g wide, exceeds %g", text, size, w, width)
			}
			if size+1 <= maxSize {
				bigger, _ := m.TextWidth(text, FontRegular, size+1)
				if bigger <= width {
					t.Fatalf("%q fits at %gpt but FitFontSize returned %g", text, size+1, size)
				}
			}
		}
	}
}

func TestFitFontSizeKeepsMaxWhenItFits(t *testing.T) {
	size, err := FitFontSize(fakeMetrics{}, FontRegular, "ABC123", 160, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != 15 {
		t.Fatalf("expected 15, got %g", size)
	}
}

// TestFitFontSizeFloor 放不下时回落到最小字号，而不是无限递减。
func TestFitFontSizeFloor(t *testing.T) {
	long := "THIS REFERENCE IS FAR TOO LONG TO EVER FIT INSIDE A SMALL COLUMN"
	size, err := FitFontSize(fakeMetrics{}, FontRegular, long, 10, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != MinFontSize {
		t.Fatalf("expected floor %g, got %g", MinFontSize, size)
	}
}

func TestFitFontSizeRequiresMetrics(t *testing.T) {
	if _, err := FitFontSize(nil, FontRegular, "x", 10, 15); err == nil {
		t.Fatalf("expected error without metrics")
	}
}

// TestFitFontSizeNeverExceedsMax 最大字号低于下限时，结果仍不超过最大字号。
func TestFitFontSizeNeverExceedsMax(t *testing.T) {
	long := strings.Repeat("W", 200)
	for _, maxSize := range []float64{4, 5.5, 6} {
		size, err := FitFontSize(fakeMetrics{}, FontRegular, long, 10, maxSize)
		if err != nil {
			t.Fatalf("FitFontSize(max=%g): %v", maxSize, err)
		}
		if size > maxSize {
			t.Fatalf("FitFontSize(max=%g) = %g, larger than the starting size", maxSize, size)
		}
	}
	if _, err := FitFontSize(fakeMetrics{}, FontRegular, "x", 10, 0.5); err == nil {
		t.Fatalf("expected error for a max size below 1pt")
	}
}

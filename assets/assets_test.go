package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/materialpassport/passport/label"
	"github.com/materialpassport/passport/layout"
)

func TestBuiltinProvidesEveryFont(t *testing.T) {
	src := Builtin()
	for _, f := range layout.Fonts {
		data, err := src.Font(f)
		if err != nil || len(data) == 0 {
			t.Fatalf("builtin font %s: len=%d err=%v", f, len(data), err)
		}
	}
	logo, err := src.Logo()
	if err != nil {
		t.Fatalf("builtin logo: %v", err)
	}
	if !strings.Contains(string(logo), "<svg") {
		t.Fatalf("builtin logo is not svg")
	}
}

func TestDirMissingAssetIsUnavailable(t *testing.T) {
	src := Dir(t.TempDir())
	_, err := src.Font(layout.FontBold)
	if !errors.Is(err, label.ErrAssetUnavailable) {
		t.Fatalf("expected asset unavailable, got %v", err)
	}
	var assetErr *label.AssetUnavailableError
	if !errors.As(err, &assetErr) || assetErr.Asset != "font:bold" {
		t.Fatalf("unexpected error detail: %v", err)
	}
	if _, err := src.Logo(); !errors.Is(err, label.ErrAssetUnavailable) {
		t.Fatalf("expected asset unavailable for logo, got %v", err)
	}
}

func TestDirReadsFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "svg"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := []byte(`<svg viewBox="0 0 10 10"><path d="M0 0 L10 10"/></svg>`)
	if err := os.WriteFile(filepath.Join(root, "svg", LogoFile), want, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Dir(root).Logo()
	if err != nil {
		t.Fatalf("Logo: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("logo mismatch: %q", got)
	}
}

// TestDefaultFallsBackToBuiltin 目录缺少字体时回落到内置字体，目录中的 logo 优先。
func TestDefaultFallsBackToBuiltin(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "svg"), 0o755); err != nil {
		t.Fatal(err)
	}
	custom := []byte(`<svg viewBox="0 0 4 4"><path d="M0 0 L4 0 L4 4 Z"/></svg>`)
	if err := os.WriteFile(filepath.Join(root, "svg", LogoFile), custom, 0o644); err != nil {
		t.Fatal(err)
	}
	src := Default(root)
	if data, err := src.Font(layout.FontThin); err != nil || len(data) == 0 {
		t.Fatalf("expected builtin fallback font, err=%v", err)
	}
	logo, err := src.Logo()
	if err != nil || string(logo) != string(custom) {
		t.Fatalf("expected directory logo, got %q err=%v", logo, err)
	}
}

func TestEmptyChain(t *testing.T) {
	_, err := Chain{}.Logo()
	if !errors.Is(err, label.ErrAssetUnavailable) {
		t.Fatalf("expected asset unavailable, got %v", err)
	}
}

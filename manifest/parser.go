// Package manifest 解析批量生成标签用的清单文件：
//
//	passport "WikiHouse" {
//	  supplier sup1 { name: "Acme Fabrication"  location: "Leeds, UK" }
//	  order ord1 { ref: "ABC123"  suppliers: [sup1] }
//	  component "MP-000001" { order: ord1  mass: 12.5  created: 1700000000 }
//	}
package manifest

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	manifestLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][,;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(manifestLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node of a manifest file.
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    StringLiteral  `parser:"Newline* 'passport' @String"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Entry is one top-level declaration.
type Entry struct {
	Supplier  *SupplierDecl  `parser:"  @@"`
	Order     *OrderDecl     `parser:"| @@"`
	Component *ComponentDecl `parser:"| @@"`
}

// SupplierDecl declares a supplier by identifier.
type SupplierDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	ID    string         `parser:"'supplier' @Ident"`
	Block *Block         `parser:"@@"`
}

// OrderDecl declares an order by identifier.
type OrderDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	ID    string         `parser:"'order' @Ident"`
	Block *Block         `parser:"@@"`
}

// ComponentDecl declares a component by its UID.
type ComponentDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	UID   StringLiteral  `parser:"'component' @String"`
	Block *Block         `parser:"@@"`
}

// Block is a braced list of fields.
type Block struct {
	Fields []*Field `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Field uses colon syntax (key: value).
type Field struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"Newline* @@"`
}

// Value is a string, number, identifier or identifier list.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *float64       `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
	List   *List          `parser:"| @@"`
}

// Kind returns the human-readable value type.
func (v *Value) Kind() string {
	switch {
	case v == nil:
		return "empty"
	case v.String != nil:
		return "string"
	case v.Number != nil:
		return "number"
	case v.Ident != nil:
		return "identifier"
	case v.List != nil:
		return "list"
	default:
		return "empty"
	}
}

// List captures `[a, b]`; separators may be commas or newlines.
type List struct {
	Open  bool     `parser:"@'['" json:"-"`
	Items []string `parser:"Newline* ( @Ident ','? Newline* )* ']'"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses manifest content from an io.Reader. name is used in error positions.
func Parse(name string, r io.Reader) (*Document, error) {
	return documentParser.Parse(name, r)
}

// ParseString parses manifest content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

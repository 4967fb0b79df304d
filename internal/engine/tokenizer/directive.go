package tokenizer

import (
	"strings"

	"go.trai.ch/cxxgraph/internal/core/domain"
)

// directive parses a preprocessor line after its '#'. The cursor is left on
// the terminating newline.
func (t *tokenizer) directive() {
	c := &t.c
	t.skipHorizontal()
	switch kw := c.identifier(); kw {
	case "include", "include_next", "import":
		t.include()
	case "define":
		t.define()
	case "undef":
		t.skipHorizontal()
		if name := c.identifier(); name != "" {
			t.emit(domain.UndefToken{Name: name})
		}
	case "if":
		t.emit(domain.IfToken{Elements: t.expression()})
	case "ifdef":
		t.emit(domain.IfToken{Elements: t.definedName(false)})
	case "ifndef":
		t.emit(domain.IfToken{Elements: t.definedName(true)})
	case "elif":
		t.emit(domain.ElseToken{})
		t.emit(domain.IfToken{Elements: t.expression()})
	case "elifdef":
		t.emit(domain.ElseToken{})
		t.emit(domain.IfToken{Elements: t.definedName(false)})
	case "elifndef":
		t.emit(domain.ElseToken{})
		t.emit(domain.IfToken{Elements: t.definedName(true)})
	case "else":
		t.emit(domain.ElseToken{})
	case "endif":
		t.emit(domain.EndIfToken{})
	}
	t.skipToEOL()
}

// include handles `#include "X"` and `#include <X>`. Computed includes and
// unterminated names produce nothing.
func (t *tokenizer) include() {
	c := &t.c
	t.skipHorizontal()
	switch c.peek() {
	case '"':
		if name, ok := c.delimited('"'); ok && name != "" {
			t.emit(domain.IncludeLocalToken{Name: name})
		}
	case '<':
		if name, ok := c.delimited('>'); ok && name != "" {
			t.emit(domain.IncludeExternalToken{Name: name})
		}
	}
}

// define handles `#define NAME value` and `#define NAME(args) body`.
// The value is the rest of the logical line without comments, trimmed.
func (t *tokenizer) define() {
	c := &t.c
	t.skipHorizontal()
	name := c.identifier()
	if name == "" {
		return
	}

	var value strings.Builder
	for !c.eol() {
		ch := c.peek()
		switch {
		case ch == '/' && c.peekAt(1) == '/':
			t.skipLineComment()
		case ch == '/' && c.peekAt(1) == '*':
			t.skipBlockComment()
			value.WriteByte(' ')
		case ch == '"' || ch == '\'':
			value.WriteString(t.copyQuoted(ch))
		default:
			value.WriteByte(c.next())
		}
	}
	t.emit(domain.DefineToken{Name: name, Value: strings.TrimSpace(value.String())})
}

// copyQuoted consumes a literal like skipQuoted but returns its text.
func (t *tokenizer) copyQuoted(quote byte) string {
	c := &t.c
	var buf []byte
	buf = append(buf, c.next())
	for !c.eol() {
		ch := c.next()
		buf = append(buf, ch)
		if ch == '\\' {
			if !c.eol() {
				buf = append(buf, c.next())
			}
			continue
		}
		if ch == quote {
			break
		}
	}
	return string(buf)
}

// definedName parses the operand of #ifdef and #ifndef.
func (t *tokenizer) definedName(negate bool) []domain.IfElement {
	t.skipHorizontal()
	name := t.c.identifier()
	if name == "" {
		return nil
	}
	if negate {
		return []domain.IfElement{domain.NotElement{}, domain.DefinedElement{Name: name}}
	}
	return []domain.IfElement{domain.DefinedElement{Name: name}}
}

// Package tokenizer extracts build-relevant directives from C++ sources.
//
// Only preprocessor directives and module declarations are recognized.
// Everything else, including comments and string, character and raw string
// literals, is skipped without interpretation. Malformed directives are
// dropped silently and scanning resumes after them.
package tokenizer

import (
	"bytes"

	"go.trai.ch/cxxgraph/internal/core/domain"
)

// Tokenize returns the directives of text in textual order.
// It never fails; unrecognized input produces no tokens.
func Tokenize(text []byte) []domain.Token {
	t := &tokenizer{c: cursor{src: text}, lineStart: true}
	t.run()
	return t.tokens
}

type tokenizer struct {
	c         cursor
	lineStart bool
	tokens    []domain.Token
}

func (t *tokenizer) emit(tok domain.Token) {
	t.tokens = append(t.tokens, tok)
}

func (t *tokenizer) run() {
	c := &t.c
	for !c.eof() {
		ch := c.peek()
		switch {
		case ch == '\n':
			c.next()
			t.lineStart = true
		case isHorizontalSpace(ch):
			c.next()
		case ch == '/' && c.peekAt(1) == '/':
			t.skipLineComment()
		case ch == '/' && c.peekAt(1) == '*':
			t.skipBlockComment()
		case ch == '#' && t.lineStart:
			c.next()
			t.directive()
			t.lineStart = false
		case ch == '"':
			t.skipQuoted('"')
			t.lineStart = false
		case ch == '\'':
			t.skipQuoted('\'')
			t.lineStart = false
		case isDigit(ch):
			c.number()
			t.lineStart = false
		case isIdentStart(ch):
			t.word()
		default:
			c.next()
			t.lineStart = false
		}
	}
}

// word handles an identifier in code: a module declaration keyword at the
// start of a line, a raw string prefix, or anything else.
func (t *tokenizer) word() {
	atLineStart := t.lineStart
	t.lineStart = false
	w := t.c.identifier()
	switch {
	case atLineStart && (w == "module" || w == "import" || w == "export"):
		t.moduleDirective(w)
	case isRawPrefix(w) && t.c.peek() == '"':
		t.skipRawString()
	}
}

func isRawPrefix(w string) bool {
	switch w {
	case "R", "LR", "uR", "UR", "u8R":
		return true
	}
	return false
}

func (t *tokenizer) skipLineComment() {
	for !t.c.eol() {
		t.c.next()
	}
}

func (t *tokenizer) skipBlockComment() {
	c := &t.c
	c.next()
	c.next()
	for !c.eof() {
		if c.peek() == '*' && c.peekAt(1) == '/' {
			c.next()
			c.next()
			return
		}
		c.next()
	}
}

// skipQuoted skips a string or character literal. An unterminated literal
// ends at the newline, which is left for the caller.
func (t *tokenizer) skipQuoted(quote byte) {
	c := &t.c
	c.next()
	for !c.eol() {
		ch := c.next()
		if ch == '\\' {
			if !c.eol() {
				c.next()
			}
			continue
		}
		if ch == quote {
			return
		}
	}
}

// skipRawString skips R"delim(...)delim". Splices are not applied inside.
func (t *tokenizer) skipRawString() {
	c := &t.c
	c.next()
	start := c.pos
	open := bytes.IndexByte(c.src[start:], '(')
	if open < 0 || open > 16 || bytes.ContainsAny(c.src[start:start+open], " \t\n\\)") {
		return
	}
	terminator := make([]byte, 0, open+2)
	terminator = append(terminator, ')')
	terminator = append(terminator, c.src[start:start+open]...)
	terminator = append(terminator, '"')
	body := start + open + 1
	end := bytes.Index(c.src[body:], terminator)
	if end < 0 {
		c.pos = len(c.src)
		return
	}
	c.pos = body + end + len(terminator)
}

// skipSpace skips whitespace, newlines and comments between the elements of
// a module declaration. It reports whether a newline was crossed.
func (t *tokenizer) skipSpace() (crossedLine bool) {
	c := &t.c
	for !c.eof() {
		ch := c.peek()
		switch {
		case ch == '\n':
			crossedLine = true
			c.next()
		case isHorizontalSpace(ch):
			c.next()
		case ch == '/' && c.peekAt(1) == '/':
			t.skipLineComment()
		case ch == '/' && c.peekAt(1) == '*':
			t.skipBlockComment()
		default:
			return crossedLine
		}
	}
	return crossedLine
}

// skipHorizontal skips blanks and comments without leaving the logical line.
func (t *tokenizer) skipHorizontal() {
	c := &t.c
	for !c.eof() {
		ch := c.peek()
		switch {
		case isHorizontalSpace(ch):
			c.next()
		case ch == '/' && c.peekAt(1) == '/':
			t.skipLineComment()
		case ch == '/' && c.peekAt(1) == '*':
			t.skipBlockComment()
		default:
			return
		}
	}
}

// skipToEOL discards the rest of a directive line. Comments may extend it.
func (t *tokenizer) skipToEOL() {
	c := &t.c
	for !c.eol() {
		switch {
		case c.peek() == '/' && c.peekAt(1) == '*':
			t.skipBlockComment()
		case c.peek() == '"':
			t.skipQuoted('"')
		default:
			c.next()
		}
	}
}

package tokenizer

import "go.trai.ch/cxxgraph/internal/core/domain"

// expression captures the condition of #if or #elif as a flat element list.
// Nothing is evaluated. An operand with no relational operator after it
// stands for a truth test and becomes `!(operand == 0)`.
func (t *tokenizer) expression() []domain.IfElement {
	c := &t.c
	var els []domain.IfElement
	for {
		t.skipHorizontal()
		if c.eol() {
			return els
		}
		ch := c.peek()
		switch {
		case ch == '(':
			c.next()
			els = append(els, domain.LeftBracketElement{})
		case ch == ')':
			c.next()
			els = append(els, domain.RightBracketElement{})
		case ch == '&' && c.peekAt(1) == '&':
			c.next()
			c.next()
			els = append(els, domain.AndElement{})
		case ch == '|' && c.peekAt(1) == '|':
			c.next()
			c.next()
			els = append(els, domain.OrElement{})
		case ch == '!' && c.peekAt(1) != '=':
			c.next()
			els = append(els, domain.NotElement{})
		case isIdentStart(ch):
			switch word := c.identifier(); word {
			case "defined":
				if name, ok := t.definedOperand(); ok {
					els = append(els, domain.DefinedElement{Name: name})
				}
			case "__has_include", "__has_include_next":
				if el := t.hasInclude(); el != nil {
					els = append(els, el)
				}
			default:
				els = t.comparison(els, word)
			}
		case isDigit(ch):
			els = t.comparison(els, c.number())
		default:
			c.next()
		}
	}
}

// definedOperand parses `(NAME)` or `NAME` after `defined`.
func (t *tokenizer) definedOperand() (string, bool) {
	c := &t.c
	t.skipHorizontal()
	if c.peek() != '(' {
		name := c.identifier()
		return name, name != ""
	}
	c.next()
	t.skipHorizontal()
	name := c.identifier()
	t.skipHorizontal()
	if name == "" || c.peek() != ')' {
		return "", false
	}
	c.next()
	return name, true
}

// hasInclude parses `("X")` or `(<X>)` after `__has_include`.
// Malformed forms yield nil and consume their whole argument, so nothing of
// it is read as further operands.
func (t *tokenizer) hasInclude() domain.IfElement {
	c := &t.c
	t.skipHorizontal()
	if c.peek() != '(' {
		switch c.peek() {
		case '"':
			c.delimited('"')
		case '<':
			c.delimited('>')
		}
		return nil
	}
	c.next()
	t.skipHorizontal()

	var el domain.IfElement
	switch c.peek() {
	case '"':
		if name, ok := c.delimited('"'); ok {
			el = domain.HasIncludeLocalElement{Name: name}
		}
	case '<':
		if name, ok := c.delimited('>'); ok {
			el = domain.HasIncludeExternalElement{Name: name}
		}
	}

	t.skipHorizontal()
	if el == nil || c.peek() != ')' {
		t.skipPastClose()
		return nil
	}
	c.next()
	return el
}

// skipPastClose consumes input through the `)` closing an already opened
// bracket, or up to the end of the line.
func (t *tokenizer) skipPastClose() {
	c := &t.c
	depth := 1
	for !c.eol() {
		switch c.next() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// comparison completes an operand with an optional relational operator.
func (t *tokenizer) comparison(els []domain.IfElement, left string) []domain.IfElement {
	t.skipHorizontal()
	op := t.relational()
	if op == "" {
		return append(els, domain.NotElement{}, domain.EqualsElement{Left: left, Right: "0"})
	}
	t.skipHorizontal()
	right := t.operand()
	if right == "" {
		return els
	}
	switch op {
	case "==":
		return append(els, domain.EqualsElement{Left: left, Right: right})
	case "!=":
		return append(els, domain.NotElement{}, domain.EqualsElement{Left: left, Right: right})
	case "<":
		return append(els, domain.LessThanElement{Left: left, Right: right})
	case "<=":
		return append(els, domain.LessThanOrEqualsElement{Left: left, Right: right})
	case ">":
		return append(els, domain.GreaterThanElement{Left: left, Right: right})
	default:
		return append(els, domain.GreaterThanOrEqualsElement{Left: left, Right: right})
	}
}

// relational consumes a comparison operator, or returns "" and consumes nothing.
func (t *tokenizer) relational() string {
	c := &t.c
	first, second := c.peek(), c.peekAt(1)
	switch {
	case first == '=' && second == '=':
	case first == '!' && second == '=':
	case (first == '<' || first == '>') && second == '=':
	case (first == '<' || first == '>') && second != first:
		c.next()
		return string(first)
	default:
		return ""
	}
	c.next()
	c.next()
	return string([]byte{first, second})
}

// operand consumes an identifier or a possibly signed number.
func (t *tokenizer) operand() string {
	c := &t.c
	ch := c.peek()
	switch {
	case isIdentStart(ch):
		return c.identifier()
	case isDigit(ch):
		return c.number()
	case (ch == '-' || ch == '+') && isDigit(c.peekAt(1)):
		c.next()
		return string(ch) + c.number()
	}
	return ""
}

package tokenizer

// cursor walks the source one logical character at a time. A backslash
// followed by a newline is a line splice and is never observed by callers.
type cursor struct {
	src []byte
	pos int
}

// splice moves past any line splices at the current position.
func (c *cursor) splice() {
	c.pos = skipSplices(c.src, c.pos)
}

func skipSplices(src []byte, p int) int {
	for p < len(src) && src[p] == '\\' {
		switch {
		case p+1 < len(src) && src[p+1] == '\n':
			p += 2
		case p+2 < len(src) && src[p+1] == '\r' && src[p+2] == '\n':
			p += 3
		default:
			return p
		}
	}
	return p
}

func (c *cursor) eof() bool {
	c.splice()
	return c.pos >= len(c.src)
}

// peek returns the current character, or 0 at the end of input.
func (c *cursor) peek() byte {
	c.splice()
	if c.pos >= len(c.src) {
		return 0
	}
	return c.src[c.pos]
}

// peekAt returns the character n positions ahead, or 0 past the end.
func (c *cursor) peekAt(n int) byte {
	p := c.pos
	for i := 0; ; i++ {
		p = skipSplices(c.src, p)
		if p >= len(c.src) {
			return 0
		}
		if i == n {
			return c.src[p]
		}
		p++
	}
}

// next consumes and returns the current character.
func (c *cursor) next() byte {
	ch := c.peek()
	if c.pos < len(c.src) {
		c.pos++
	}
	return ch
}

// eol reports whether the cursor sits on a newline or the end of input.
func (c *cursor) eol() bool {
	return c.eof() || c.peek() == '\n'
}

// identifier consumes an identifier and returns it, or "" if none starts here.
func (c *cursor) identifier() string {
	if !isIdentStart(c.peek()) {
		return ""
	}
	var buf []byte
	for !c.eof() && isIdentChar(c.peek()) {
		buf = append(buf, c.next())
	}
	return string(buf)
}

// moduleName consumes a dotted module name such as `std.core`.
func (c *cursor) moduleName() string {
	if !isIdentStart(c.peek()) {
		return ""
	}
	var buf []byte
	for !c.eof() && (isIdentChar(c.peek()) || c.peek() == '.') {
		buf = append(buf, c.next())
	}
	return string(buf)
}

// number consumes a preprocessing number, including digit separators,
// exponent signs and suffixes.
func (c *cursor) number() string {
	var buf []byte
	for !c.eof() {
		ch := c.peek()
		switch {
		case isIdentChar(ch) || ch == '.':
			buf = append(buf, c.next())
		case (ch == '+' || ch == '-') && len(buf) > 0 && isExponent(buf[len(buf)-1]):
			buf = append(buf, c.next())
		case ch == '\'' && isIdentChar(c.peekAt(1)):
			buf = append(buf, c.next())
		default:
			return string(buf)
		}
	}
	return string(buf)
}

// delimited consumes an opener, then everything up to close. It fails, leaving
// the cursor on the newline, when the line ends first.
func (c *cursor) delimited(closer byte) (string, bool) {
	c.next()
	var buf []byte
	for {
		if c.eol() {
			return "", false
		}
		ch := c.next()
		if ch == closer {
			return string(buf), true
		}
		buf = append(buf, ch)
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isExponent(ch byte) bool {
	return ch == 'e' || ch == 'E' || ch == 'p' || ch == 'P'
}

func isHorizontalSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
}

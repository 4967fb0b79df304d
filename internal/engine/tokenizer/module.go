package tokenizer

import "go.trai.ch/cxxgraph/internal/core/domain"

// moduleDirective parses a declaration introduced by `export`, `module` or
// `import` at the start of a line. Whitespace, newlines and comments may
// separate its elements. A declaration lacking its name or its `;` is
// dropped, and the text that broke it is not re-read as a new line.
func (t *tokenizer) moduleDirective(keyword string) {
	c := &t.c
	exported := false
	if keyword == "export" {
		crossed := t.skipSpace()
		if !isIdentStart(c.peek()) {
			t.lineStart = crossed && c.peek() == '#'
			return
		}
		keyword = c.identifier()
		exported = true
	}

	var crossed bool
	switch keyword {
	case "module":
		crossed = t.moduleDeclaration(exported)
	case "import":
		crossed = t.importDeclaration(exported)
	}
	// A directive following a broken declaration on its own line still counts.
	t.lineStart = crossed && c.peek() == '#'
}

// moduleDeclaration handles `module name;` and `module name:partition;`.
// The global module fragment `module;` and `module :private;` produce nothing.
func (t *tokenizer) moduleDeclaration(exported bool) bool {
	c := &t.c
	crossed := t.skipSpace()
	if !isIdentStart(c.peek()) {
		return crossed
	}
	name := c.moduleName()
	crossed = t.skipSpace()
	switch c.peek() {
	case ';':
		c.next()
		t.emit(domain.ModuleToken{Name: name, Exported: exported})
		return false
	case ':':
		c.next()
		crossed = t.skipSpace()
		partition := c.moduleName()
		if partition == "" {
			return crossed
		}
		crossed = t.skipSpace()
		if c.peek() != ';' {
			return crossed
		}
		c.next()
		t.emit(domain.ModulePartitionToken{Mod: name, Name: partition, Exported: exported})
		return false
	}
	return crossed
}

// importDeclaration handles `import name;`, `import :partition;`,
// `import "header";` and `import <header>;`.
func (t *tokenizer) importDeclaration(exported bool) bool {
	c := &t.c
	crossed := t.skipSpace()

	var tok domain.Token
	switch ch := c.peek(); {
	case ch == '"':
		name, ok := c.delimited('"')
		if !ok || name == "" {
			return false
		}
		tok = domain.ImportIncludeLocalToken{Name: name, Exported: exported}
	case ch == '<':
		name, ok := c.delimited('>')
		if !ok || name == "" {
			return false
		}
		tok = domain.ImportIncludeExternalToken{Name: name, Exported: exported}
	case ch == ':':
		c.next()
		crossed = t.skipSpace()
		name := c.moduleName()
		if name == "" {
			return crossed
		}
		tok = domain.ImportModulePartitionToken{Name: name, Exported: exported}
	case isIdentStart(ch):
		tok = domain.ImportModuleToken{Name: c.moduleName(), Exported: exported}
	default:
		return crossed
	}

	crossed = t.skipSpace()
	if c.peek() != ';' {
		return crossed
	}
	c.next()
	t.emit(tok)
	return false
}

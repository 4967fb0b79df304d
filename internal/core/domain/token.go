package domain

// TokenKind is the stable variant index of a Token. It is the first field of a
// persisted token tuple, so existing values must never be renumbered.
type TokenKind uint8

const (
	KindIncludeLocal TokenKind = iota
	KindIncludeExternal
	KindModule
	KindModulePartition
	KindImportModule
	KindImportModulePartition
	KindImportIncludeLocal
	KindImportIncludeExternal
	KindDefine
	KindUndef
	KindIf
	KindElse
	KindEndIf
)

// Token is a build-relevant directive found in a source or header file.
// The set of implementations is closed; consumers dispatch with a type switch.
type Token interface {
	Kind() TokenKind
	isToken()
}

// IncludeLocalToken is `#include "Name"`.
type IncludeLocalToken struct {
	Name string
}

// IncludeExternalToken is `#include <Name>`.
type IncludeExternalToken struct {
	Name string
}

// ModuleToken is `[export] module Name;`.
type ModuleToken struct {
	Name     string
	Exported bool
}

// ModulePartitionToken is `[export] module Mod:Name;`.
type ModulePartitionToken struct {
	Mod      string
	Name     string
	Exported bool
}

// ImportModuleToken is `[export] import Name;`.
type ImportModuleToken struct {
	Name     string
	Exported bool
}

// ImportModulePartitionToken is `[export] import :Name;`.
type ImportModulePartitionToken struct {
	Name     string
	Exported bool
}

// ImportIncludeLocalToken is `[export] import "Name";`.
type ImportIncludeLocalToken struct {
	Name     string
	Exported bool
}

// ImportIncludeExternalToken is `[export] import <Name>;`.
type ImportIncludeExternalToken struct {
	Name     string
	Exported bool
}

// DefineToken is `#define Name Value`. Value may be empty.
type DefineToken struct {
	Name  string
	Value string
}

// UndefToken is `#undef Name`.
type UndefToken struct {
	Name string
}

// IfToken captures the condition of an #if family directive as a flat,
// textually ordered element sequence. It is never evaluated.
type IfToken struct {
	Elements []IfElement
}

// ElseToken is `#else`, and also precedes the IfToken of every #elif variant.
type ElseToken struct{}

// EndIfToken is `#endif`.
type EndIfToken struct{}

func (IncludeLocalToken) Kind() TokenKind          { return KindIncludeLocal }
func (IncludeExternalToken) Kind() TokenKind       { return KindIncludeExternal }
func (ModuleToken) Kind() TokenKind                { return KindModule }
func (ModulePartitionToken) Kind() TokenKind       { return KindModulePartition }
func (ImportModuleToken) Kind() TokenKind          { return KindImportModule }
func (ImportModulePartitionToken) Kind() TokenKind { return KindImportModulePartition }
func (ImportIncludeLocalToken) Kind() TokenKind    { return KindImportIncludeLocal }
func (ImportIncludeExternalToken) Kind() TokenKind { return KindImportIncludeExternal }
func (DefineToken) Kind() TokenKind                { return KindDefine }
func (UndefToken) Kind() TokenKind                 { return KindUndef }
func (IfToken) Kind() TokenKind                    { return KindIf }
func (ElseToken) Kind() TokenKind                  { return KindElse }
func (EndIfToken) Kind() TokenKind                 { return KindEndIf }

func (IncludeLocalToken) isToken()          {}
func (IncludeExternalToken) isToken()       {}
func (ModuleToken) isToken()                {}
func (ModulePartitionToken) isToken()       {}
func (ImportModuleToken) isToken()          {}
func (ImportModulePartitionToken) isToken() {}
func (ImportIncludeLocalToken) isToken()    {}
func (ImportIncludeExternalToken) isToken() {}
func (DefineToken) isToken()                {}
func (UndefToken) isToken()                 {}
func (IfToken) isToken()                    {}
func (ElseToken) isToken()                  {}
func (EndIfToken) isToken()                 {}

// IfElementKind is the stable variant index of an IfElement.
type IfElementKind uint8

const (
	KindAnd IfElementKind = iota
	KindOr
	KindNot
	KindLeftBracket
	KindRightBracket
	KindDefined
	KindEquals
	KindGreaterThan
	KindGreaterThanOrEquals
	KindLessThan
	KindLessThanOrEquals
	KindHasIncludeLocal
	KindHasIncludeExternal
)

// IfElement is one structural element of a conditional expression.
type IfElement interface {
	Kind() IfElementKind
	isIfElement()
}

// AndElement is `&&`.
type AndElement struct{}

// OrElement is `||`.
type OrElement struct{}

// NotElement is `!`.
type NotElement struct{}

// LeftBracketElement is `(`.
type LeftBracketElement struct{}

// RightBracketElement is `)`.
type RightBracketElement struct{}

// DefinedElement is `defined(Name)` or `defined Name`.
type DefinedElement struct {
	Name string
}

// EqualsElement is `Left == Right`. `!=` is a NotElement followed by an EqualsElement.
type EqualsElement struct {
	Left, Right string
}

// GreaterThanElement is `Left > Right`.
type GreaterThanElement struct {
	Left, Right string
}

// GreaterThanOrEqualsElement is `Left >= Right`.
type GreaterThanOrEqualsElement struct {
	Left, Right string
}

// LessThanElement is `Left < Right`.
type LessThanElement struct {
	Left, Right string
}

// LessThanOrEqualsElement is `Left <= Right`.
type LessThanOrEqualsElement struct {
	Left, Right string
}

// HasIncludeLocalElement is `__has_include("Name")`.
type HasIncludeLocalElement struct {
	Name string
}

// HasIncludeExternalElement is `__has_include(<Name>)`.
type HasIncludeExternalElement struct {
	Name string
}

func (AndElement) Kind() IfElementKind                 { return KindAnd }
func (OrElement) Kind() IfElementKind                  { return KindOr }
func (NotElement) Kind() IfElementKind                 { return KindNot }
func (LeftBracketElement) Kind() IfElementKind         { return KindLeftBracket }
func (RightBracketElement) Kind() IfElementKind        { return KindRightBracket }
func (DefinedElement) Kind() IfElementKind             { return KindDefined }
func (EqualsElement) Kind() IfElementKind              { return KindEquals }
func (GreaterThanElement) Kind() IfElementKind         { return KindGreaterThan }
func (GreaterThanOrEqualsElement) Kind() IfElementKind { return KindGreaterThanOrEquals }
func (LessThanElement) Kind() IfElementKind            { return KindLessThan }
func (LessThanOrEqualsElement) Kind() IfElementKind    { return KindLessThanOrEquals }
func (HasIncludeLocalElement) Kind() IfElementKind     { return KindHasIncludeLocal }
func (HasIncludeExternalElement) Kind() IfElementKind  { return KindHasIncludeExternal }

func (AndElement) isIfElement()                 {}
func (OrElement) isIfElement()                  {}
func (NotElement) isIfElement()                 {}
func (LeftBracketElement) isIfElement()         {}
func (RightBracketElement) isIfElement()        {}
func (DefinedElement) isIfElement()             {}
func (EqualsElement) isIfElement()              {}
func (GreaterThanElement) isIfElement()         {}
func (GreaterThanOrEqualsElement) isIfElement() {}
func (LessThanElement) isIfElement()            {}
func (LessThanOrEqualsElement) isIfElement()    {}
func (HasIncludeLocalElement) isIfElement()     {}
func (HasIncludeExternalElement) isIfElement()  {}

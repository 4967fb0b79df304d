package cachefile

import (
	"fmt"

	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

var errMalformedTuple = zerr.New("malformed tuple")

func encodeToken(t domain.Token) []any {
	k := int(t.Kind())
	switch t := t.(type) {
	case domain.IncludeLocalToken:
		return []any{k, t.Name}
	case domain.IncludeExternalToken:
		return []any{k, t.Name}
	case domain.ModuleToken:
		return []any{k, t.Name, t.Exported}
	case domain.ModulePartitionToken:
		return []any{k, t.Mod, t.Name, t.Exported}
	case domain.ImportModuleToken:
		return []any{k, t.Name, t.Exported}
	case domain.ImportModulePartitionToken:
		return []any{k, t.Name, t.Exported}
	case domain.ImportIncludeLocalToken:
		return []any{k, t.Name, t.Exported}
	case domain.ImportIncludeExternalToken:
		return []any{k, t.Name, t.Exported}
	case domain.DefineToken:
		return []any{k, t.Name, t.Value}
	case domain.UndefToken:
		return []any{k, t.Name}
	case domain.IfToken:
		elems := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = encodeElement(e)
		}
		return []any{k, elems}
	default:
		return []any{k}
	}
}

func encodeElement(e domain.IfElement) []any {
	k := int(e.Kind())
	switch e := e.(type) {
	case domain.DefinedElement:
		return []any{k, e.Name}
	case domain.EqualsElement:
		return []any{k, e.Left, e.Right}
	case domain.GreaterThanElement:
		return []any{k, e.Left, e.Right}
	case domain.GreaterThanOrEqualsElement:
		return []any{k, e.Left, e.Right}
	case domain.LessThanElement:
		return []any{k, e.Left, e.Right}
	case domain.LessThanOrEqualsElement:
		return []any{k, e.Left, e.Right}
	case domain.HasIncludeLocalElement:
		return []any{k, e.Name}
	case domain.HasIncludeExternalElement:
		return []any{k, e.Name}
	default:
		return []any{k}
	}
}

func encodeDependency(d domain.Dependency) []any {
	info := d.Info()
	return []any{int(d.Kind()), info.Name, int(info.Visibility)}
}

// tuple is a decoded positional record.
type tuple []any

func (t tuple) intAt(i int) (int, error) {
	if i >= len(t) {
		return 0, t.malformed(i)
	}
	switch v := t[i].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil //nolint:gosec // kind indexes are small
	default:
		return 0, t.malformed(i)
	}
}

func (t tuple) stringAt(i int) (string, error) {
	if i >= len(t) {
		return "", t.malformed(i)
	}
	switch v := t[i].(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		// Unquoted scalars written by hand may decode as numbers or booleans.
		return fmt.Sprint(v), nil
	}
}

func (t tuple) boolAt(i int) (bool, error) {
	if i >= len(t) {
		return false, t.malformed(i)
	}
	v, ok := t[i].(bool)
	if !ok {
		return false, t.malformed(i)
	}
	return v, nil
}

func (t tuple) tupleAt(i int) (tuple, error) {
	if i >= len(t) {
		return nil, t.malformed(i)
	}
	v, ok := t[i].([]any)
	if !ok {
		return nil, t.malformed(i)
	}
	return tuple(v), nil
}

func (t tuple) malformed(i int) error {
	return zerr.With(zerr.With(errMalformedTuple, "tuple", fmt.Sprint([]any(t))), "field", i)
}

func decodeToken(t tuple) (domain.Token, error) {
	kind, err := t.intAt(0)
	if err != nil {
		return nil, err
	}

	// Names and flags of every variant share positions, so decode them once.
	name, nameErr := t.stringAt(1)
	exported, exportedErr := t.boolAt(2)
	flagged := func(build func(string, bool) domain.Token) (domain.Token, error) {
		if nameErr != nil {
			return nil, nameErr
		}
		if exportedErr != nil {
			return nil, exportedErr
		}
		return build(name, exported), nil
	}

	switch domain.TokenKind(kind) {
	case domain.KindIncludeLocal:
		return domain.IncludeLocalToken{Name: name}, nameErr
	case domain.KindIncludeExternal:
		return domain.IncludeExternalToken{Name: name}, nameErr
	case domain.KindModule:
		return flagged(func(n string, e bool) domain.Token { return domain.ModuleToken{Name: n, Exported: e} })
	case domain.KindModulePartition:
		mod := name
		if nameErr != nil {
			return nil, nameErr
		}
		part, err := t.stringAt(2)
		if err != nil {
			return nil, err
		}
		exp, err := t.boolAt(3)
		if err != nil {
			return nil, err
		}
		return domain.ModulePartitionToken{Mod: mod, Name: part, Exported: exp}, nil
	case domain.KindImportModule:
		return flagged(func(n string, e bool) domain.Token { return domain.ImportModuleToken{Name: n, Exported: e} })
	case domain.KindImportModulePartition:
		return flagged(func(n string, e bool) domain.Token {
			return domain.ImportModulePartitionToken{Name: n, Exported: e}
		})
	case domain.KindImportIncludeLocal:
		return flagged(func(n string, e bool) domain.Token {
			return domain.ImportIncludeLocalToken{Name: n, Exported: e}
		})
	case domain.KindImportIncludeExternal:
		return flagged(func(n string, e bool) domain.Token {
			return domain.ImportIncludeExternalToken{Name: n, Exported: e}
		})
	case domain.KindDefine:
		if nameErr != nil {
			return nil, nameErr
		}
		value, err := t.stringAt(2)
		if err != nil {
			return nil, err
		}
		return domain.DefineToken{Name: name, Value: value}, nil
	case domain.KindUndef:
		return domain.UndefToken{Name: name}, nameErr
	case domain.KindIf:
		raw, err := t.tupleAt(1)
		if err != nil {
			return nil, err
		}
		elems := make([]domain.IfElement, 0, len(raw))
		for i := range raw {
			et, err := raw.tupleAt(i)
			if err != nil {
				return nil, err
			}
			e, err := decodeElement(et)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return domain.IfToken{Elements: elems}, nil
	case domain.KindElse:
		return domain.ElseToken{}, nil
	case domain.KindEndIf:
		return domain.EndIfToken{}, nil
	default:
		return nil, zerr.With(errMalformedTuple, "token_kind", kind)
	}
}

func decodeElement(t tuple) (domain.IfElement, error) {
	kind, err := t.intAt(0)
	if err != nil {
		return nil, err
	}

	pair := func() (string, string, error) {
		l, err := t.stringAt(1)
		if err != nil {
			return "", "", err
		}
		r, err := t.stringAt(2)
		return l, r, err
	}

	switch domain.IfElementKind(kind) {
	case domain.KindAnd:
		return domain.AndElement{}, nil
	case domain.KindOr:
		return domain.OrElement{}, nil
	case domain.KindNot:
		return domain.NotElement{}, nil
	case domain.KindLeftBracket:
		return domain.LeftBracketElement{}, nil
	case domain.KindRightBracket:
		return domain.RightBracketElement{}, nil
	case domain.KindDefined:
		name, err := t.stringAt(1)
		return domain.DefinedElement{Name: name}, err
	case domain.KindEquals:
		l, r, err := pair()
		return domain.EqualsElement{Left: l, Right: r}, err
	case domain.KindGreaterThan:
		l, r, err := pair()
		return domain.GreaterThanElement{Left: l, Right: r}, err
	case domain.KindGreaterThanOrEquals:
		l, r, err := pair()
		return domain.GreaterThanOrEqualsElement{Left: l, Right: r}, err
	case domain.KindLessThan:
		l, r, err := pair()
		return domain.LessThanElement{Left: l, Right: r}, err
	case domain.KindLessThanOrEquals:
		l, r, err := pair()
		return domain.LessThanOrEqualsElement{Left: l, Right: r}, err
	case domain.KindHasIncludeLocal:
		name, err := t.stringAt(1)
		return domain.HasIncludeLocalElement{Name: name}, err
	case domain.KindHasIncludeExternal:
		name, err := t.stringAt(1)
		return domain.HasIncludeExternalElement{Name: name}, err
	default:
		return nil, zerr.With(errMalformedTuple, "element_kind", kind)
	}
}

func decodeDependency(t tuple) (domain.Dependency, error) {
	kind, err := t.intAt(0)
	if err != nil {
		return nil, err
	}
	name, err := t.stringAt(1)
	if err != nil {
		return nil, err
	}
	vis, err := t.intAt(2)
	if err != nil {
		return nil, err
	}
	d := domain.NewDependency(domain.DependencyKind(kind), name, domain.Visibility(vis)) //nolint:gosec // bounded by NewDependency
	if d == nil {
		return nil, zerr.With(errMalformedTuple, "dependency_kind", kind)
	}
	return d, nil
}

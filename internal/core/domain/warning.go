package domain

import "fmt"

// Warning is a non-fatal diagnostic about a well-formed but unsupported construct.
type Warning struct {
	Component string
	Message   string
	Path      string
}

func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("%s: %s", w.Component, w.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Component, w.Message, w.Path)
}

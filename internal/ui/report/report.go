// Package report prints build task graphs for humans.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/ui/output"
	"go.trai.ch/cxxgraph/internal/ui/style"
)

// Printer writes a task graph in execution order, one task per line followed
// by its inputs.
type Printer struct {
	w    io.Writer
	root string
}

// NewPrinter creates a Printer. Source targets below root are shown relative to it.
func NewPrinter(w io.Writer, root string) *Printer {
	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)
	return &Printer{w: w, root: root}
}

// PrintGraph writes every task of g.
func (p *Printer) PrintGraph(g *domain.TaskGraph) error {
	for t := range g.Walk() {
		if _, err := fmt.Fprintf(p.w, "%s %s\n", style.Dot, p.label(t)); err != nil {
			return err
		}
		for _, in := range t.Inputs() {
			line := fmt.Sprintf("  %s %s %s", style.Arrow, in.Kind(), p.target(in))
			if _, err := fmt.Fprintln(p.w, style.Muted.Render(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) label(t domain.BuildTask) string {
	kind := t.Kind().String()
	if isLink(t.Kind()) {
		kind = style.Link.Render(kind)
	} else {
		kind = style.Compile.Render(kind)
	}
	return kind + " " + p.target(t)
}

func (p *Printer) target(t domain.BuildTask) string {
	target := t.Target()
	if isLink(t.Kind()) || p.root == "" {
		return target
	}
	rel, err := filepath.Rel(p.root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	return filepath.ToSlash(rel)
}

func isLink(k domain.TaskKind) bool {
	switch k {
	case domain.KindLinkExecutable, domain.KindLinkLibrary, domain.KindLinkModuleLibrary:
		return true
	default:
		return false
	}
}

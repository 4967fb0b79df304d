// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
	Circle  = "○"
)

// Task kind labels used when printing a build graph.
var (
	Compile = lipgloss.NewStyle().Foreground(Iris)
	Link    = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Slate)
)

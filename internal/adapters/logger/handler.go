package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/cxxgraph/internal/ui/output"
	"go.trai.ch/cxxgraph/internal/ui/style"
)

// PrettyHandler is a slog.Handler writing one colored line per record: a
// level icon, the message, then the attributes in a muted color.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []string
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	return NewPrettyHandlerWithOutput(output.New(w), opts)
}

// NewPrettyHandlerWithOutput creates a PrettyHandler on a prepared termenv output.
func NewPrettyHandlerWithOutput(out *termenv.Output, opts *slog.HandlerOptions) *PrettyHandler {
	if out == nil {
		out = output.New(os.Stderr)
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{out: out, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	msg := r.Message
	if icon != "" {
		msg = icon + " " + msg
	}

	var sb strings.Builder
	sb.WriteString(h.out.String(msg).Foreground(color).String())

	attrs := slices.Clip(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, formatAttr(h.group, attr))
		return true
	})
	if len(attrs) > 0 {
		muted := termenv.RGBColor(string(style.Slate))
		sb.WriteByte(' ')
		sb.WriteString(h.out.String(strings.Join(attrs, " ")).Foreground(muted).String())
	}
	sb.WriteByte('\n')

	_, err := h.out.WriteString(sb.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
// Attributes are formatted once, under the group active at this point.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, attr := range attrs {
		c.attrs = append(c.attrs, formatAttr(h.group, attr))
	}
	return c
}

// WithGroup returns a new Handler qualifying later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return c
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: append([]string(nil), h.attrs...),
		group: h.group,
	}
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level >= slog.LevelInfo:
		return "", termenv.RGBColor(string(style.White))
	default:
		return style.Circle, termenv.RGBColor(string(style.Slate))
	}
}

// formatAttr renders key=value, quoting values that contain spaces so paths
// with blanks stay readable.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	value := attr.Value.Resolve().String()
	if strings.ContainsAny(value, " \t\n\"") {
		value = strconv.Quote(value)
	}
	return key + "=" + value
}

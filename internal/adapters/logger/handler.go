package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/slicer/internal/ui/output"
	"go.trai.ch/slicer/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record.
// Group attributes are flattened into dotted keys.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	prefix string   // open groups, each followed by a dot
	attrs  []string // preformatted key=value pairs from WithAttrs
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// The level is read on every record, so a *slog.LevelVar may change it later.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	var sb strings.Builder
	if icon != "" {
		sb.WriteString(icon + " ")
	}
	sb.WriteString(r.Message)

	for _, pair := range h.attrs {
		sb.WriteString(" " + pair)
	}
	r.Attrs(func(attr slog.Attr) bool {
		for _, pair := range flatten(h.prefix, attr, nil) {
			sb.WriteString(" " + pair)
		}
		return true
	})

	styled := h.out.String(sb.String()).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended. They
// are qualified by the groups open at this point, not by later ones.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	pairs := make([]string, len(h.attrs), len(h.attrs)+len(attrs))
	copy(pairs, h.attrs)
	for _, attr := range attrs {
		pairs = flatten(h.prefix, attr, pairs)
	}

	clone := *h
	clone.attrs = pairs
	return &clone
}

// WithGroup returns a new Handler that nests later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func levelStyle(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	case level >= slog.LevelInfo:
		return "", style.Slate
	default:
		return style.Dot, style.Iris
	}
}

// flatten appends attr to dst as key=value pairs, expanding groups into
// dotted keys. Attributes with an empty key are dropped, except for inlined groups.
func flatten(prefix string, attr slog.Attr, dst []string) []string {
	attr.Value = attr.Value.Resolve()

	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			dst = flatten(prefix, member, dst)
		}
		return dst
	}

	if attr.Key == "" {
		return dst
	}
	return append(dst, prefix+attr.Key+"="+attr.Value.String())
}

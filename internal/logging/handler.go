package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler is a text slog.Handler tuned for terminals: short timestamps,
// level-colored tags and key=value attributes, with color dropped
// automatically when the writer is not a color-capable TTY.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string

	colored bool
}

var (
	timeColor  = color.New(color.FgHiBlack)
	debugColor = color.New(color.FgMagenta)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	keyColor   = color.New(color.FgCyan)
)

// NewHandler creates a terminal text handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		opts:    *opts,
		out:     out,
		mu:      &sync.Mutex{},
		colored: SupportsColor(out),
	}
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.colored {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return h.paint(errorColor, level.String())
	case level >= slog.LevelWarn:
		return h.paint(warnColor, level.String())
	case level >= slog.LevelInfo:
		return h.paint(infoColor, level.String())
	default:
		return h.paint(debugColor, level.String())
	}
}

// Enabled reports whether records at level are handled.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes one record as "TIME LEVEL message key=value ...".
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !r.Time.IsZero() {
		fmt.Fprintf(h.out, "%s ", h.paint(timeColor, r.Time.Format(time.Kitchen)))
	}
	fmt.Fprintf(h.out, "%-5s %s", h.levelTag(r.Level), r.Message)

	for _, a := range h.attrs {
		h.writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(a)
		return true
	})
	fmt.Fprintln(h.out)

	return nil
}

func (h *Handler) writeAttr(a slog.Attr) {
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	fmt.Fprintf(h.out, " %s=%v", h.paint(keyColor, key), a.Value.Any())
}

// WithAttrs returns a handler that prepends attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *h
	derived.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	derived.attrs = append(append(derived.attrs, h.attrs...), attrs...)
	return &derived
}

// WithGroup returns a handler that qualifies attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	derived := *h
	derived.groups = make([]string, 0, len(h.groups)+1)
	derived.groups = append(append(derived.groups, h.groups...), name)
	return &derived
}

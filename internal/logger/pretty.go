package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiGray   = "\033[90m"
	ansiCyan   = "\033[36m"
)

// PrettyHandler writes one colored line per record for terminal use:
//
//	15:04:05 WARN  no patch for train train=MHI2_VW_ER_P4364 backup=unit01
type PrettyHandler struct {
	level slog.Leveler
	w     io.Writer
	mu    *sync.Mutex
	group string
	attrs []slog.Attr
}

// NewPrettyHandler returns a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{w: w, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(ansiGray)
	b.WriteString(r.Time.Format(time.TimeOnly))
	b.WriteString(ansiReset)
	b.WriteByte(' ')
	b.WriteString(levelColor(r.Level))
	b.WriteString(fmt.Sprintf("%-5s", r.Level.String()))
	b.WriteString(ansiReset)
	b.WriteByte(' ')
	b.WriteString(r.Message)

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		b.WriteString(ansiCyan)
		// Handler attrs were qualified when they were added.
		for _, a := range h.attrs {
			b.WriteByte(' ')
			writeAttr(&b, a, "")
		}
		r.Attrs(func(a slog.Attr) bool {
			b.WriteByte(' ')
			writeAttr(&b, a, h.group)
			return true
		})
		b.WriteString(ansiReset)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiBlue
	default:
		return ansiGray
	}
}

func writeAttr(b *strings.Builder, a slog.Attr, group string) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		prefix := a.Key
		if group != "" {
			prefix = group + "." + a.Key
		}
		for i, ga := range a.Value.Group() {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeAttr(b, ga, prefix)
		}
		return
	}
	if group != "" {
		b.WriteString(group)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	s := a.Value.String()
	if a.Value.Kind() == slog.KindTime {
		s = a.Value.Time().Format(time.RFC3339)
	}
	if needsQuoting(s) {
		fmt.Fprintf(b, "%q", s)
		return
	}
	b.WriteString(s)
}

func needsQuoting(s string) bool {
	return strings.ContainsAny(s, " \t\n\"=")
}

package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// timeLayout is used for the leading timestamp of each line.
const timeLayout = "15:04:05"

// Handler writes one line per record:
//
//	15:04:05 WARN  skipping client client=claude transport=http
//
// Group names become dotted key prefixes. Values are masked with [RedactAttr]
// before any configured ReplaceAttr runs. Colour is used only when the
// output supports it (see [SupportsColor]).
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	pre    []prefixedAttr
	groups []string
	pal    *palette
}

type prefixedAttr struct {
	attr   slog.Attr
	groups []string
}

// palette holds the colours of a colour-capable output.
type palette struct {
	time, key          *color.Color
	trace, debug, info *color.Color
	warn, fail         *color.Color
}

func newPalette() *palette {
	return &palette{
		time:  color.New(color.FgHiBlack),
		key:   color.New(color.FgCyan),
		trace: color.New(color.FgHiBlack),
		debug: color.New(color.FgMagenta),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed, color.Bold),
	}
}

// NewHandler returns a Handler writing to out. A nil opts logs info and above.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{out: out, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if SupportsColor(out) {
		h.pal = newPalette()
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

// Handle implements slog.Handler. The line is built first and written with a
// single call.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor(), r.Time.Format(timeLayout)))
		buf.WriteByte(' ')
	}
	label := levelLabel(r.Level)
	buf.WriteString(h.paint(h.levelColor(r.Level), label))
	buf.WriteString(strings.Repeat(" ", max(1, 6-len(label))))
	buf.WriteString(r.Message)

	for _, pa := range h.pre {
		h.writeAttr(&buf, pa.attr, pa.groups)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, a, h.groups)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}
		for _, member := range a.Value.Group() {
			h.writeAttr(buf, member, groups)
		}
		return
	}

	a = RedactAttr(groups, a)
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		if a.Equal(slog.Attr{}) {
			return
		}
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	buf.WriteByte(' ')
	buf.WriteString(h.paint(h.keyColor(), key))
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.pre = make([]prefixedAttr, 0, len(h.pre)+len(attrs))
	next.pre = append(next.pre, h.pre...)
	for _, a := range attrs {
		next.pre = append(next.pre, prefixedAttr{attr: a, groups: h.groups})
	}
	return &next
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &next
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) timeColor() *color.Color {
	if h.pal == nil {
		return nil
	}
	return h.pal.time
}

func (h *Handler) keyColor() *color.Color {
	if h.pal == nil {
		return nil
	}
	return h.pal.key
}

func (h *Handler) levelColor(l slog.Level) *color.Color {
	if h.pal == nil {
		return nil
	}
	switch {
	case l >= slog.LevelError:
		return h.pal.fail
	case l >= slog.LevelWarn:
		return h.pal.warn
	case l >= slog.LevelInfo:
		return h.pal.info
	case l >= slog.LevelDebug:
		return h.pal.debug
	default:
		return h.pal.trace
	}
}

// levelLabel names l, spelling LevelTrace as TRACE rather than DEBUG-4.
func levelLabel(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// formatValue quotes strings that would otherwise be ambiguous in key=value
// output.
func formatValue(v slog.Value) string {
	var s string
	if v.Kind() == slog.KindString {
		s = v.String()
	} else {
		s = fmt.Sprint(v.Any())
	}
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

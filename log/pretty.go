package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the handler's output, so color is dropped automatically
// when the output is not a terminal.
type palette struct {
	key, str, num, yes, no, dur, when lipgloss.Style
	levels                            map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		yes:  fg("2"),
		no:   fg("1"),
		dur:  fg("5"),
		when: fg("4"),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	for _, at := range []slog.Level{
		slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug,
	} {
		if l >= at {
			return p.levels[at]
		}
	}

	return p.levels[slog.Level(LevelTrace)]
}

// value renders v with the style matching its kind.
func (p palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.when.Render(v.Time().Format(time.RFC3339))

	default:
		if v.Any() == nil {
			return p.key.Render("null")
		}

		return p.str.Render(fmt.Sprint(v.Any()))
	}
}

// field is a flattened attribute: group names are joined into the key.
type field struct {
	key   string
	value slog.Value
}

// prettyHandler is the shared core of the pretty text and JSON handlers.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    palette
	prefix string  // dotted group prefix for subsequent attrs
	fields []field // attrs added with WithAttrs, already flattened
	render func(*prettyHandler, []field) []byte
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	render func(*prettyHandler, []field) []byte,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		pal:    newPalette(w),
		render: render,
	}
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return newPrettyHandler(w, opts, (*prettyHandler).renderText)
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return newPrettyHandler(w, opts, (*prettyHandler).renderJSON)
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.fields)+r.NumAttrs())

	builtin := []slog.Attr{
		slog.Time(slog.TimeKey, r.Time),
		slog.Any(slog.LevelKey, r.Level),
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			builtin = append(builtin,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	builtin = append(builtin, slog.String(slog.MessageKey, r.Message))

	for _, a := range builtin {
		if a.Key == slog.TimeKey && r.Time.IsZero() {
			continue
		}

		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			fields = append(fields, field{a.Key, a.Value})
		}
	}

	fields = append(fields, h.fields...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.flatten(fields, h.prefix, a)

		return true
	})

	out := h.render(h, fields)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(out)

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.fields = slices.Clone(h.fields)

	for _, a := range attrs {
		c.fields = h.flatten(c.fields, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// flatten appends a to fields, expanding groups into dotted keys.
func (h *prettyHandler) flatten(fields []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub = prefix + a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			fields = h.flatten(fields, sub, ga)
		}

		return fields
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	return append(fields, field{prefix + a.Key, a.Value})
}

// renderText renders one line of key=value pairs without quoting.
func (h *prettyHandler) renderText(fields []field) []byte {
	var buf bytes.Buffer

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(h.renderValue(f))
	}

	buf.WriteByte('\n')

	return buf.Bytes()
}

// renderJSON renders an indented, unquoted, JSON-like object.
func (h *prettyHandler) renderJSON(fields []field) []byte {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = "  " + h.pal.key.Render(f.key) + ": " + h.renderValue(f)
	}

	return []byte("{\n" + strings.Join(lines, ",\n") + "\n}\n")
}

func (h *prettyHandler) renderValue(f field) string {
	if f.key == slog.LevelKey {
		text := f.value.String()
		if l, ok := f.value.Any().(slog.Level); ok {
			text = strings.ToUpper(Level(l).String())

			return h.pal.level(l).Render(text)
		}

		return h.pal.level(slog.Level(ParseLevel(text))).Render(text)
	}

	return h.pal.value(f.value)
}

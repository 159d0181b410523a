package hlog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "#29C6E8",
	slog.LevelInfo:  "#2C75FE",
	slog.LevelWarn:  "#E7C229",
	slog.LevelError: "#FF2A25",
}

type Renderer struct {
	lvlStyles map[slog.Level]lipgloss.Style
}

// NewRenderer returns a renderer coloring levels, or a plain one.
func NewRenderer(plain bool) Renderer {
	if plain {
		return Renderer{}
	}

	lvlStyles := map[slog.Level]lipgloss.Style{}
	for lvl, color := range levelColors {
		lvlStyles[lvl] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}

	return Renderer{lvlStyles: lvlStyles}
}

func (r Renderer) level(lvl slog.Level) string {
	if style, ok := r.lvlStyles[lvl]; ok {
		return style.Render(lvl.String())
	}

	return lvl.String()
}

func renderAttr(sb *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, gattr := range attr.Value.Group() {
			renderAttr(sb, prefix+attr.Key+".", gattr)
		}
		return
	}

	sb.WriteString(" ")
	sb.WriteString(prefix)
	sb.WriteString(attr.Key)
	sb.WriteString("=")
	sb.WriteString(attr.Value.String())
}

func FormatRecord(r Renderer, attrs []slog.Attr, record slog.Record) string {
	var sb strings.Builder
	sb.WriteString(r.level(record.Level))
	sb.WriteString(" ")
	sb.WriteString(record.Message)

	for _, attr := range attrs {
		renderAttr(&sb, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		renderAttr(&sb, "", attr)

		return true
	})

	return sb.String()
}

type textHandler struct {
	attrs   []slog.Attr
	leveler slog.Leveler
	w       io.Writer
	mu      *sync.Mutex

	renderer Renderer
}

func (t textHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= t.leveler.Level()
}

func (t textHandler) Handle(ctx context.Context, record slog.Record) error {
	line := FormatRecord(t.renderer, t.attrs, record) + "\n"

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := io.WriteString(t.w, line)

	return err
}

func (t textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	t.attrs = append(t.attrs[:len(t.attrs):len(t.attrs)], attrs...)

	return t
}

func (t textHandler) WithGroup(name string) slog.Handler {
	return t
}

func NewTextLogger(w io.Writer, leveler slog.Leveler, plain bool) Logger {
	return NewLogger(textHandler{
		w:        w,
		leveler:  leveler,
		mu:       &sync.Mutex{},
		renderer: NewRenderer(plain),
	})
}

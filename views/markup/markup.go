// Package markup is the small HTML writer the view components share. It
// remembers the first write error so components can write straight through
// and check once at the end.
package markup

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments to an io.Writer.
type Writer struct {
	w   io.Writer
	err error
}

// New wraps w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as-is.
func (m *Writer) Raw(parts ...string) {
	for _, p := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, p)
	}
}

// Text writes escaped text.
func (m *Writer) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Int writes a number.
func (m *Writer) Int(n int) {
	m.Raw(strconv.Itoa(n))
}

// Attr writes ` name="value"` with the value escaped.
func (m *Writer) Attr(name, value string) {
	m.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Component renders a nested component.
func (m *Writer) Component(ctx context.Context, c templ.Component) {
	if m.err != nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

// Err returns the first error seen.
func (m *Writer) Err() error {
	return m.err
}

package harness

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report accumulates a scenario's formatted output and its checks.
// Numbers written through Printf use English digit grouping (1,000,000).
type Report struct {
	buf    strings.Builder
	p      *message.Printer
	checks []Check
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{p: message.NewPrinter(language.English)}
}

// Printf appends formatted text.
func (r *Report) Printf(format string, args ...any) {
	r.buf.WriteString(r.p.Sprintf(format, args...))
}

// Line appends s and a newline.
func (r *Report) Line(s string) {
	r.buf.WriteString(s)
	r.buf.WriteByte('\n')
}

// Blank appends an empty line.
func (r *Report) Blank() {
	r.buf.WriteByte('\n')
}

// Rule appends a line of width copies of ch.
func (r *Report) Rule(ch string, width int) {
	r.Line(strings.Repeat(ch, width))
}

// Banner appends a title framed by rules of '='.
func (r *Report) Banner(title string, width int) {
	r.Rule("=", width)
	r.Line(title)
	r.Rule("=", width)
}

// String returns the report text so far.
func (r *Report) String() string {
	return r.buf.String()
}

// Checks returns the checks recorded so far.
func (r *Report) Checks() []Check {
	return append([]Check(nil), r.checks...)
}

// Ints renders a slice as "[a, b, c]" without locale grouping.
func Ints(vals []int64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Mark renders a pass/fail glyph.
func Mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

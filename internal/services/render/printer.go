// Package render writes API results to the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/sgai/internal/sgai"
)

// Format selects the encoding of printed data.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json or yaml)", s)
	}
}

// Printer renders results to out.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
	logger arbor.ILogger
}

// Option configures the Printer.
type Option func(*Printer)

// WithFormat sets the output encoding.
func WithFormat(format Format) Option {
	return func(p *Printer) {
		p.format = format
	}
}

// WithColor enables ANSI colours.
func WithColor(color bool) Option {
	return func(p *Printer) {
		p.color = color
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(p *Printer) {
		p.logger = logger
	}
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, opts ...Option) *Printer {
	p := &Printer{out: out, format: FormatJSON}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = arbor.NewLogger()
	}
	return p
}

// Data prints v as indented JSON (highlighted when colours are on) or YAML.
func (p *Printer) Data(v any) error {
	if p.format == FormatYAML {
		encoded, err := yaml.Marshal(toPlain(v))
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = fmt.Fprintf(p.out, "%s", encoded)
		return err
	}

	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	out := string(encoded)
	if p.color {
		out = Highlight(out)
		_, err = fmt.Fprintf(p.out, "\n%s\n\n", out)
		return err
	}
	_, err = fmt.Fprintln(p.out, out)
	return err
}

// Done prints the completion line of a command.
func (p *Printer) Done(elapsedMs int64) {
	p.line(text.FgGreen, fmt.Sprintf("Done in %s", FormatElapsed(elapsedMs)))
}

// Docs prints a documentation link.
func (p *Printer) Docs(url string) {
	p.line(text.Faint, "Docs: "+url)
}

// Error prints a failure message.
func (p *Printer) Error(msg string) {
	if msg == "" {
		msg = "Unknown error"
	}
	p.line(text.FgRed, "✖ "+msg)
}

// Notice prints a highlighted informational line.
func (p *Printer) Notice(msg string) {
	p.line(text.FgYellow, msg)
}

func (p *Printer) line(color text.Color, msg string) {
	if p.color {
		msg = color.Sprint(msg)
	}
	fmt.Fprintln(p.out, msg)
}

// History prints one page of history records as a table.
func (p *Printer) History(service string, page int, rows []sgai.JobResponse, hasMore bool) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	if p.color {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.SetTitle(fmt.Sprintf("%s history, page %d", service, page))
	t.AppendHeader(table.Row{"ID", "Status", "Target", "Created"})

	for _, row := range rows {
		status := row.Status()
		if status == "" {
			status = "—"
		}
		t.AppendRow(table.Row{
			truncate(sgai.RequestID(row), 12),
			p.colorStatus(status),
			truncate(target(row), 50),
			created(row),
		})
	}
	t.AppendFooter(table.Row{"Total", len(rows), "", ""})
	t.Render()

	if hasMore {
		p.Notice(fmt.Sprintf("More results available: --page %d", page+1))
	}
}

func (p *Printer) colorStatus(status string) string {
	if !p.color {
		return status
	}
	switch {
	case sgai.IsSuccess(status):
		return text.FgGreen.Sprint(status)
	case sgai.IsFailure(status):
		return text.FgRed.Sprint(status)
	default:
		return text.FgYellow.Sprint(status)
	}
}

// FormatElapsed renders a duration in milliseconds: "850ms" below one
// second, "2.3s" above.
func FormatElapsed(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

var (
	jsonKeyPattern     = regexp.MustCompile(`("(?:\\.|[^"\\])*")\s*:`)
	jsonStringPattern  = regexp.MustCompile(`:\s*("(?:\\.|[^"\\])*")`)
	jsonNumberPattern  = regexp.MustCompile(`:\s*(-?\d+(?:\.\d+)?)\b`)
	jsonLiteralPattern = regexp.MustCompile(`:\s*(true|false|null)\b`)
)

// Highlight colours the keys and scalar values of indented JSON.
func Highlight(s string) string {
	s = jsonKeyPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := jsonKeyPattern.FindStringSubmatch(m)[1]
		return text.FgCyan.Sprint(key) + ":"
	})
	s = jsonStringPattern.ReplaceAllStringFunc(s, func(m string) string {
		val := jsonStringPattern.FindStringSubmatch(m)[1]
		return strings.Replace(m, val, text.FgGreen.Sprint(val), 1)
	})
	s = jsonNumberPattern.ReplaceAllStringFunc(s, func(m string) string {
		return ": " + text.FgYellow.Sprint(jsonNumberPattern.FindStringSubmatch(m)[1])
	})
	s = jsonLiteralPattern.ReplaceAllStringFunc(s, func(m string) string {
		return ": " + text.FgMagenta.Sprint(jsonLiteralPattern.FindStringSubmatch(m)[1])
	})
	return s
}

// toPlain round-trips v through JSON so that yaml.v3 sees plain maps and
// slices with the JSON field names.
func toPlain(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return v
	}
	return plain
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func target(row sgai.JobResponse) string {
	for _, field := range []string{"website_url", "url", "user_prompt"} {
		if s := row.String(field); s != "" {
			return s
		}
	}
	return ""
}

func created(row sgai.JobResponse) string {
	for _, field := range []string{"created_at", "timestamp", "updated_at"} {
		s := row.String(field)
		if s == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.Local().Format("2006-01-02 15:04:05")
		}
		return s
	}
	return ""
}

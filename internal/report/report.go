// Package report renders joined rows and writes the report file.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/samcharles93/mibdb/pkg/record"
)

// DefaultSeparator keeps spreadsheets from converting numeric-looking text.
const DefaultSeparator = "\t;"

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options select the report layout. Zero values select the defaults.
type Options struct {
	Columns   []string
	Separator string
	Format    string
}

func (o Options) withDefaults() Options {
	if len(o.Columns) == 0 {
		o.Columns = DefaultColumns
	}
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.Format == "" {
		o.Format = FormatText
	}
	return o
}

// Validate reports option errors before any scanning starts.
func (o Options) Validate() error {
	o = o.withDefaults()
	switch o.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown report format %q (want %s or %s)", o.Format, FormatText, FormatJSON)
	}
	if strings.Contains(o.Separator, "\n") {
		return fmt.Errorf("separator must not contain a newline")
	}
	seen := make(map[string]bool, len(o.Columns))
	for _, c := range o.Columns {
		if seen[c] {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	return nil
}

// Render writes rows to w. A column missing from a row renders as "".
func Render(w io.Writer, rows []*record.Record, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Format == FormatJSON {
		return renderJSON(w, rows, opts.Columns)
	}
	return renderText(w, rows, opts.Columns, opts.Separator)
}

func renderText(w io.Writer, rows []*record.Record, cols []string, sep string) error {
	fields := make([]string, len(cols))
	for i, c := range cols {
		fields[i] = escapeField(c, sep)
	}
	if _, err := io.WriteString(w, strings.Join(fields, sep)+"\n"); err != nil {
		return err
	}
	for _, row := range rows {
		for i, c := range cols {
			fields[i] = escapeField(row.String(c), sep)
		}
		if _, err := io.WriteString(w, strings.Join(fields, sep)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// escapeField keeps a text cell on one line. Backslashes and control bytes
// become Go escape sequences and every occurrence of sep is written as \xHH
// escapes. Other bytes, UTF-8 included, pass through unchanged.
func escapeField(s, sep string) string {
	if !needsEscape(s, sep) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], sep) {
			for j := 0; j < len(sep); j++ {
				fmt.Fprintf(&b, `\x%02x`, sep[j])
			}
			i += len(sep)
			continue
		}
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
		i++
	}
	return b.String()
}

func needsEscape(s, sep string) bool {
	if strings.Contains(s, sep) {
		return true
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == 0x7f || c == '\\' {
			return true
		}
	}
	return false
}

func renderJSON(w io.Writer, rows []*record.Record, cols []string) error {
	out := make([]*record.Record, len(rows))
	for i, row := range rows {
		p := record.New()
		for _, c := range cols {
			if v, ok := row.Get(c); ok {
				p.Set(c, v)
			} else {
				p.SetText(c, "")
			}
		}
		out[i] = p
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile renders the full report in memory and replaces path atomically.
// It returns the number of bytes written.
func WriteFile(path string, rows []*record.Record, opts Options) (int64, error) {
	var buf bytes.Buffer
	if err := Render(&buf, rows, opts); err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	cleanup := func(err error) (int64, error) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return 0, err
	}

	n, err := tmp.Write(buf.Bytes())
	if err != nil {
		return cleanup(fmt.Errorf("write report: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync report: %w", err))
	}
	if err := tmp.Chmod(0o644); err != nil {
		return cleanup(fmt.Errorf("chmod report: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("replace report: %w", err)
	}
	return int64(n), nil
}

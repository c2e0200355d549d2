package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"

	stampFormat = "2006-01-02-1504"
)

// Exporter serializes result sets for download. Filenames are stamped
// "<name>-<yyyy-MM-dd-HHmm>.<ext>", a compatibility contract for any
// tooling consuming the files.
type Exporter struct {
	now func() time.Time
}

type Option func(*Exporter)

func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Filename stamps name with the current timestamp and extension.
func (e *Exporter) Filename(name, format string) string {
	return fmt.Sprintf("%s-%s.%s", name, e.now().Format(stampFormat), format)
}

// CSV writes a header row followed by one line per row. Cell values
// containing a comma are wrapped in double quotes; embedded quote
// characters are passed through unescaped, matching the historical
// export contract. An empty row set writes nothing and logs a
// diagnostic.
func (e *Exporter) CSV(ctx context.Context, w io.Writer, rows []domain.Row, columns []string) error {
	if len(rows) == 0 {
		zerolog.Ctx(ctx).Warn().Msg("no data to export")
		return nil
	}
	if len(columns) == 0 {
		columns = deriveColumns(rows[0])
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(columns, ","))
	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, csvCell(row[col]))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// JSON writes the rows as a pretty-printed array; empty input emits
// "[]".
func (e *Exporter) JSON(_ context.Context, w io.Writer, rows []domain.Row) error {
	if rows == nil {
		rows = []domain.Row{}
	}
	blob, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if _, err := w.Write(blob); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteFile serializes rows into dir using the requested format and
// returns the created path. CSV with an empty row set creates no file.
func (e *Exporter) WriteFile(ctx context.Context, dir, name, format string, rows []domain.Row, columns []string) (string, error) {
	switch format {
	case FormatCSV, FormatJSON:
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}

	if format == FormatCSV && len(rows) == 0 {
		zerolog.Ctx(ctx).Warn().Msg("no data to export")
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, e.Filename(name, format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if format == FormatCSV {
		err = e.CSV(ctx, f, rows, columns)
	} else {
		err = e.JSON(ctx, f, rows)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func csvCell(v any) string {
	s := cellString(v)
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

func cellString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprintf("%v", n)
	}
}

func deriveColumns(row domain.Row) []string {
	columns := make([]string, 0, len(row))
	for k := range row {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

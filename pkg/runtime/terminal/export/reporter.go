package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
)

type TableConfig struct {
	ColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{ColumnWidth: 22}
}

// Reporter renders a generated report as a terminal table with its
// summary block.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) Handle(report *domain.GeneratedReport, title string) error {
	columns := report.Columns
	if len(columns) == 0 && len(report.Data) > 0 {
		for k := range report.Data[0] {
			columns = append(columns, k)
		}
		sort.Strings(columns)
	}

	funcMap := template.FuncMap{
		"headerRow": func() string {
			return r.formatCells(columns, func(col string) any { return col })
		},
		"dataRow": func(row domain.Row) string {
			return r.formatCells(columns, func(col string) any { return row[col] })
		},
		"separator": func() string {
			parts := make([]string, 0, len(columns))
			for range columns {
				parts = append(parts, strings.Repeat("-", r.config.ColumnWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
{{.Title}}

Period: {{.Report.Summary.DateRange.Start}} to {{.Report.Summary.DateRange.End}}
Total Records: {{.Report.Summary.TotalRecords}}
{{range $key, $value := .Report.Summary.Metrics}}{{$key}}: {{$value}}
{{end}}
{{- if .Report.Data}}
{{separator}}
{{headerRow}}
{{separator}}
{{range .Report.Data}}{{dataRow .}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, struct {
		Title  string
		Report *domain.GeneratedReport
	}{Title: title, Report: report})
}

func (r *Reporter) formatCells(columns []string, value func(string) any) string {
	cells := make([]string, 0, len(columns))
	for _, col := range columns {
		v := value(col)
		if v == nil {
			v = ""
		}
		cell := fmt.Sprintf("%v", v)
		if len(cell) > r.config.ColumnWidth {
			cell = cell[:r.config.ColumnWidth-1] + "…"
		}
		cells = append(cells, fmt.Sprintf(" %-*s ", r.config.ColumnWidth, cell))
	}
	return "|" + strings.Join(cells, "|") + "|"
}

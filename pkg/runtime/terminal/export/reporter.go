package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/finova-data/finova-client/pkg/models/api"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        28,
		ValueWidth:       12,
		DescriptionWidth: 54,
	}
}

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

func (r *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name string, value interface{}, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s |",
				r.config.NameWidth, name,
				r.config.ValueWidth, value,
				r.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", r.config.NameWidth+2),
				strings.Repeat("-", r.config.ValueWidth+2),
				strings.Repeat("-", r.config.DescriptionWidth+2))
		},
		"score": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}
}

func (r *Reporter) render(name, text string, data interface{}) error {
	t, err := template.New(name).Funcs(r.funcMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, data)
}

type dimensionScore struct {
	Name  string
	Score float64
}

func sortedScores(scores map[string]float64) []dimensionScore {
	out := make([]dimensionScore, 0, len(scores))
	for name, score := range scores {
		out = append(out, dimensionScore{Name: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Reporter) RenderAnalysis(result *api.AnalysisResult) error {
	tmpl := `
Dataset: {{.Result.Dataset.Rows}} rows x {{.Result.Dataset.Columns}} columns
Overall Data Quality Score: {{score .Result.OverallScore}}

{{separator}}
{{formatRow "Dimension" "Score" ""}}
{{separator}}
{{range .Scores}}{{formatRow .Name (score .Score) ""}}
{{end}}{{separator}}
{{if .Result.ReasonedFindings}}
Findings:
{{separator}}
{{formatRow "Attribute" "Severity" "Issue"}}
{{separator}}
{{range .Result.ReasonedFindings}}{{formatRow .Attribute .Severity (or .Issue .Description)}}
{{end}}{{separator}}
{{else}}
No quality issues detected.
{{end}}{{if .Result.NarrativeSummary}}
Summary: {{.Result.NarrativeSummary}}
{{end}}{{range .Result.Recommendations}}  [{{.Priority}}] {{.Dimension}}: {{.Action}}
{{end}}{{if .Result.SafetyNote}}
Note: {{.Result.SafetyNote}}
{{end}}`

	return r.render("analysis", tmpl, map[string]interface{}{
		"Result": result,
		"Scores": sortedScores(result.DimensionScores),
	})
}

func (r *Reporter) RenderHistory(entries []api.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(r.writer, "No analyses yet.")
		return err
	}

	tmpl := `{{separator}}
{{formatRow "Dataset" "Score" "Analyzed At"}}
{{separator}}
{{range .}}{{formatRow (printf "#%d %s" .ID .DatasetName) (score .OverallScore) (.CreatedAt.Format "2006-01-02 15:04")}}
{{end}}{{separator}}
`
	return r.render("history", tmpl, entries)
}

func (r *Reporter) RenderHistoryDetail(detail *api.HistoryDetail) error {
	tmpl := `#{{.Detail.ID}} {{.Detail.DatasetName}} ({{.Detail.CreatedAt.Format "2006-01-02 15:04"}})
Overall Data Quality Score: {{score .Detail.OverallScore}}

{{separator}}
{{formatRow "Dimension" "Score" ""}}
{{separator}}
{{range .Scores}}{{formatRow .Name (score .Score) ""}}
{{end}}{{separator}}
{{if .Detail.NarrativeSummary}}
Summary: {{.Detail.NarrativeSummary}}
{{end}}{{range .Detail.Recommendations}}  [{{.Priority}}] {{.Dimension}}: {{.Action}}
{{end}}`
	return r.render("historyDetail", tmpl, map[string]interface{}{
		"Detail": detail,
		"Scores": sortedScores(detail.DimensionScores),
	})
}

func (r *Reporter) RenderTrend(report *api.TrendReport) error {
	tmpl := `Overall direction: {{.Report.OverallDirection}} (delta {{printf "%+.2f" .Report.Delta}})

{{range $dim, $dir := .Report.DimensionDirections}}  {{$dim}}: {{$dir}}
{{end}}{{if .Report.Timeline}}
{{separator}}
{{formatRow "Dataset" "Score" "Analyzed At"}}
{{separator}}
{{range .Report.Timeline}}{{formatRow (printf "#%d %s" .ID .DatasetName) (score .OverallScore) (.CreatedAt.Format "2006-01-02 15:04")}}
{{end}}{{separator}}
{{end}}`
	return r.render("trend", tmpl, map[string]interface{}{"Report": report})
}

func (r *Reporter) RenderHealth(status *api.HealthStatus) error {
	_, err := fmt.Fprintf(r.writer, "engine: %s, ontology loaded: %t\n", status.Status, status.OntologyLoaded)
	return err
}

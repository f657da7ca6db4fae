package api

import (
	"encoding/json"
	"time"
)

type DatasetShape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Finding is one reasoned observation about dataset quality. The engine
// emits findings either as structured objects or as bare strings, so every
// field is optional and a bare string decodes into Description alone.
type Finding struct {
	Attribute     string   `json:"attribute,omitempty"`
	Issue         string   `json:"issue,omitempty"`
	Severity      string   `json:"severity,omitempty"`
	ViolationRate *float64 `json:"violation_rate,omitempty"`
	Dimensions    []string `json:"dimensions,omitempty"`
	Description   string   `json:"description,omitempty"`
}

func (f *Finding) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Finding{Description: s}
		return nil
	}

	type plain Finding
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = Finding(p)
	return nil
}

type Recommendation struct {
	Priority  string `json:"priority"`
	Dimension string `json:"dimension"`
	Action    string `json:"action"`
}

// AnalysisResult is the full payload returned by the analyze endpoint.
// ContextBundle is opaque to the client; it is echoed back verbatim on
// follow-up chat calls.
type AnalysisResult struct {
	AnalysisID       int                    `json:"analysis_id,omitempty"`
	Dataset          DatasetShape           `json:"dataset"`
	OverallScore     float64                `json:"overall_dqs"`
	DimensionScores  map[string]float64     `json:"dimension_scores"`
	ReasonedFindings []Finding              `json:"reasoned_stats"`
	Summary          string                 `json:"summary,omitempty"`
	NarrativeSummary string                 `json:"genai_summary,omitempty"`
	Recommendations  []Recommendation       `json:"genai_recommendations,omitempty"`
	SafetyNote       string                 `json:"genai_safety_note,omitempty"`
	ContextBundle    map[string]interface{} `json:"context_bundle,omitempty"`
}

type HistoryEntry struct {
	ID           int       `json:"id"`
	DatasetName  string    `json:"dataset_name"`
	CreatedAt    time.Time `json:"created_at"`
	OverallScore float64   `json:"overall_dqs"`
}

type HistoryDetail struct {
	HistoryEntry
	DimensionScores  map[string]float64 `json:"dimension_scores"`
	ReasonedFindings []Finding          `json:"reasoned_stats"`
	NarrativeSummary string             `json:"genai_summary,omitempty"`
	Recommendations  []Recommendation   `json:"genai_recommendations,omitempty"`
}

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDegrading TrendDirection = "degrading"
	TrendStable    TrendDirection = "stable"
)

type TrendReport struct {
	OverallDirection    TrendDirection    `json:"overall_direction"`
	Delta               float64           `json:"delta"`
	DimensionDirections map[string]string `json:"dimension_directions"`
	Timeline            []HistoryEntry    `json:"timeline"`
}

type HealthStatus struct {
	Status         string `json:"status"`
	OntologyLoaded bool   `json:"ontology_loaded"`
}

type ChatRequest struct {
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

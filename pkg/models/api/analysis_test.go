package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindingDecodesObjectOrBareString(t *testing.T) {
	payload := `{
		"dataset": {"rows": 3, "columns": 2},
		"overall_dqs": 0.5,
		"dimension_scores": {"Completeness": 0.5},
		"reasoned_stats": [
			{"attribute":"email","issue":"mandatory_missing_values","severity":"High","violation_rate":0.4,"dimensions":["Completeness"]},
			"no rules fired for attribute 'name'"
		]
	}`

	var result AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	require.Len(t, result.ReasonedFindings, 2)

	structured := result.ReasonedFindings[0]
	assert.Equal(t, "email", structured.Attribute)
	assert.Equal(t, "mandatory_missing_values", structured.Issue)
	assert.Equal(t, "High", structured.Severity)
	require.NotNil(t, structured.ViolationRate)
	assert.InDelta(t, 0.4, *structured.ViolationRate, 1e-9)
	assert.Equal(t, []string{"Completeness"}, structured.Dimensions)

	bare := result.ReasonedFindings[1]
	assert.Equal(t, Finding{Description: "no rules fired for attribute 'name'"}, bare)
}

func TestSessionPayloadInvariant(t *testing.T) {
	var payload SessionPayload
	require.NoError(t, json.Unmarshal([]byte(`{"authenticated":false}`), &payload))
	assert.False(t, payload.Authenticated)
	assert.Nil(t, payload.User)

	require.NoError(t, json.Unmarshal(
		[]byte(`{"authenticated":true,"user":{"id":3,"username":"ada"}}`), &payload))
	assert.True(t, payload.Authenticated)
	require.NotNil(t, payload.User)
	assert.Equal(t, "ada", payload.User.Username)
}

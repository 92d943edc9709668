package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `
projects:
  - name: Widget Analysis
    nature: Standard
    pi: Prof Grace Hopper
    department: Computing
    lead: ada
    start_date: "2025-01-01"
    end_date: "2025-12-31"
    status: Active
    charging: Actual
    funding:
      - source: External
        funding_body: EPSRC
        project_code: EP/X012345/1
        cost_centre: ABCD
        activity: G12345
        analysis_code: 182130
        expiry_date: "2026-03-31"
        budget: 38900
        daily_rate: 389
  - name: Gadget Pipeline
    nature: Support
    pi: Prof Grace Hopper
    department: Mathematics
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(validDocument))
	require.NoError(t, err)
	require.Len(t, doc.Projects, 2)

	first := doc.Projects[0]
	assert.Equal(t, "Widget Analysis", first.Name)
	assert.Equal(t, "Computing", first.Department)
	assert.Equal(t, "ada", first.Lead)
	require.Len(t, first.Funding, 1)
	assert.Equal(t, "External", first.Funding[0].Source)
	assert.Equal(t, "38900", first.Funding[0].Budget.String())
	require.NotNil(t, first.Funding[0].AnalysisCode)
	assert.Equal(t, 182130, *first.Funding[0].AnalysisCode)

	second := doc.Projects[1]
	assert.Empty(t, second.Funding)
	assert.Empty(t, second.Status)
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"projects": [{"name": "Widget Analysis", "nature": "Standard", "pi": "Prof Grace Hopper", "department": "Computing"}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "not yaml",
			input: "{projects: [",
		},
		{
			name:  "missing projects key",
			input: "funding: []",
		},
		{
			name: "project missing required fields",
			input: `
projects:
  - name: Widget Analysis
`,
		},
		{
			name: "unknown project field",
			input: `
projects:
  - name: Widget Analysis
    nature: Standard
    pi: Prof Grace Hopper
    department: Computing
    budget: 100
`,
		},
		{
			name: "funding missing budget",
			input: `
projects:
  - name: Widget Analysis
    nature: Standard
    pi: Prof Grace Hopper
    department: Computing
    funding:
      - source: Internal
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

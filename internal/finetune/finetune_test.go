package finetune

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/classify"
	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/observation"
)

func TestBuildDataset(t *testing.T) {
	examples := []Example{{
		FirmInfo: firm.Info{Firm: "Acme Pharma Inc", FEI: "3001234567"},
		Observations: []observation.Observation{
			{Number: 1, Content: "Media fills failed."},
		},
		ExpectedOutput: classify.Result{OverallClassification: constants.NAI},
	}}

	records, err := BuildDataset(examples)
	require.NoError(t, err)
	require.Len(t, records, 1)

	msgs := records[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, classify.SystemPrompt, msgs[0].Content)
	assert.Equal(t, "user", msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "- Firm Name: Acme Pharma Inc")
	assert.Contains(t, msgs[1].Content, "Observation 1: Media fills failed.")
	assert.Equal(t, "assistant", msgs[2].Role)

	var expected classify.Result
	require.NoError(t, json.Unmarshal([]byte(msgs[2].Content), &expected))
	assert.Equal(t, constants.NAI, expected.OverallClassification)
	assert.NotContains(t, msgs[2].Content, `"metadata"`)
}

func TestWriteJSONL(t *testing.T) {
	records, err := BuildDataset([]Example{SeedExample(), SeedExample()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dataset.jsonl")
	require.NoError(t, WriteJSONL(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		lines++
		var rec Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		assert.Len(t, rec.Messages, 3)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 2, lines)
}

func TestSeedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labeled_data_example.json")
	require.NoError(t, WriteSeed(path))

	examples, err := LoadExamples(path)
	require.NoError(t, err)
	require.Len(t, examples, 1)

	ex := examples[0]
	assert.Equal(t, "RC Outsourcing, LLC", ex.FirmInfo.Firm)
	assert.Len(t, ex.Observations, 4)
	assert.Equal(t, constants.OAI, ex.ExpectedOutput.OverallClassification)
	require.Len(t, ex.ExpectedOutput.Violations, 4)
	assert.True(t, ex.ExpectedOutput.Violations[1].IsRepeat)
}

func TestLoadExamplesRejectsBadEnum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labeled.json")
	raw := `[{
	  "firm_info": {"firm": "Acme Pharma Inc", "fei": "3001234567"},
	  "observations": [{"number": 1, "content": "x"}],
	  "expected_output": {"overall_classification": "AWFUL"}
	}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	_, err := LoadExamples(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid classification")
}

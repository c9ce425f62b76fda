// Package finetune converts labeled Form 483 analyses into the chat-format
// JSONL dataset OpenAI fine-tuning expects.
package finetune

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/complianceworks/fda483/internal/classify"
	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/observation"
)

// Example is one labeled training case. ExpectedOutput goes through the same
// strict decoding as live analyses, so mislabeled enum values fail at load
// time instead of poisoning a training run.
type Example struct {
	FirmInfo       firm.Info                 `json:"firm_info"`
	Observations   []observation.Observation `json:"observations"`
	ExpectedOutput classify.Result           `json:"expected_output"`
}

// Message is one chat turn in a training record.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is one JSONL line of the dataset.
type Record struct {
	Messages []Message `json:"messages"`
}

// LoadExamples reads a labeled-data file.
func LoadExamples(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labeled data %s: %w", path, err)
	}
	var examples []Example
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parse labeled data %s: %w", path, err)
	}
	return examples, nil
}

// BuildDataset renders each example into a chat-format record using the same
// prompt construction as live classification.
func BuildDataset(examples []Example) ([]Record, error) {
	records := make([]Record, 0, len(examples))
	for i, ex := range examples {
		expected, err := json.Marshal(ex.ExpectedOutput)
		if err != nil {
			return nil, fmt.Errorf("encode expected output of example %d: %w", i, err)
		}
		records = append(records, Record{Messages: []Message{
			{Role: "system", Content: classify.SystemPrompt},
			{Role: "user", Content: classify.BuildPrompt(ex.Observations, ex.FirmInfo)},
			{Role: "assistant", Content: string(expected)},
		}})
	}
	return records, nil
}

// WriteJSONL writes one compact record per line.
func WriteJSONL(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	return nil
}

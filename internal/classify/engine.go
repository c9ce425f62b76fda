package classify

import (
	"context"
	"log/slog"
	"time"

	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/llm"
	"github.com/complianceworks/fda483/internal/observation"
)

// classifyTemperature trades a little determinism for fuller narratives.
const classifyTemperature = 0.3

// Engine runs the compliance analysis call and stamps record provenance.
type Engine struct {
	chat   llm.ChatCompleter
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(chat llm.ChatCompleter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{chat: chat, logger: logger, now: time.Now}
}

// Classify analyzes one case's observations against the resolved identity.
// The returned record carries the metadata block; any transport or decode
// failure surfaces as an error and the case produces no record.
func (e *Engine) Classify(ctx context.Context, observations []observation.Observation, info firm.Info) (Result, error) {
	e.logger.Info("classify.request", "firm", info.Firm, "observations", len(observations))

	raw, err := e.chat.CompleteJSON(ctx, llm.ChatRequest{
		System:      SystemPrompt,
		User:        BuildPrompt(observations, info),
		Temperature: classifyTemperature,
	})
	if err != nil {
		return Result{}, err
	}

	res, err := Decode(raw)
	if err != nil {
		e.logger.Error("classify.decode_failed", "firm", info.Firm, "error", err)
		return Result{}, err
	}

	res.Metadata = &Metadata{
		ProcessedDate:    e.now().Format(time.RFC3339),
		ModelUsed:        e.chat.Model(),
		Firm:             info.Firm,
		FEI:              info.FEI,
		ObservationCount: len(observations),
	}

	e.logger.Info("classify.ok",
		"firm", info.Firm,
		"classification", res.OverallClassification,
		"violations", len(res.Violations))
	return res, nil
}

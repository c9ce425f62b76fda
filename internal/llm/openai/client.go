package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/complianceworks/fda483/internal/common"
	"github.com/complianceworks/fda483/internal/llm"
)

// CompleteJSON implements llm.ChatCompleter over text-only chat/completions
// with a JSON-object response format. One attempt per call, no retry.
func (c *Client) CompleteJSON(ctx context.Context, req llm.ChatRequest) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.chat.request",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", req.Temperature,
		"system_len", len(req.System),
		"user_len", len(req.User),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     req.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, httpErr := c.post(ctx, endpoint, body, rid)
	if httpErr != nil {
		c.logger.Error("llm.chat.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("LLM_HTTP_ERROR", httpErr.Error(), common.ErrExtraction)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.chat.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("LLM_DECODE_ERROR", fmt.Sprintf("decode openai response: %v", err), common.ErrExtraction)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.chat.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("LLM_NO_CHOICES", "no choices in openai response", common.ErrExtraction)
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	c.logger.Info("llm.chat.ok",
		"req_id", rid,
		"content_bytes", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return []byte(content), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any, rid string) ([]byte, error) {
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, err := llm.SendJSON(ctx, c.http, url, body, headers, c.logger.With("req_id", rid))
	if err != nil {
		if status > 0 {
			return nil, fmt.Errorf("openai status %d: %s", status, raw)
		}
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	return raw, nil
}

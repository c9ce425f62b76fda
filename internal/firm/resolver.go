package firm

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/spf13/cast"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/llm"
	"github.com/complianceworks/fda483/internal/mediaid"
	"github.com/complianceworks/fda483/internal/metadata"
)

// identityTemperature keeps the extraction call near-deterministic.
const identityTemperature = 0.1

// Input carries one case's material for identity resolution.
type Input struct {
	// Filename is the source PDF basename; its media ID keys the feed lookup.
	Filename string
	// Text is the full extracted document text.
	Text string
	// Hint carries caller-supplied values, accepted without validation.
	Hint Identity
	// Mapping is the metadata feed lookup. Nil disables the feed tier.
	Mapping metadata.Mapping
}

// Resolver resolves firm identity through the tiered fallback chain.
type Resolver struct {
	chat   llm.ChatCompleter
	logger *slog.Logger
}

// NewResolver builds a Resolver. A nil chat disables the LLM tier; the reduced
// pattern scan still runs in its place.
func NewResolver(chat llm.ChatCompleter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{chat: chat, logger: logger}
}

type tier struct {
	name string
	run  func(ctx context.Context) (string, bool)
}

// Resolve returns the best identity for one case. Fields are independent and
// never move backward: a field settled by an early tier is not revisited, and
// the LLM tier performs at most one call per case no matter how many fields
// reach it.
func (r *Resolver) Resolve(ctx context.Context, in Input) Identity {
	id := in.Hint
	if id.Name != "" || id.FEI != "" {
		r.logger.Debug("firm.resolve.hint", "file", in.Filename, "firm", id.Name, "fei", id.FEI)
	}

	pass := &llmPass{r: r, in: in}

	if id.Name == "" {
		id.Name = r.resolveField(ctx, in, "firm", []tier{
			{"feed", func(context.Context) (string, bool) { return feedName(in) }},
			{"patterns", func(context.Context) (string, bool) { return searchFirmName(in.Text) }},
			{"llm", pass.firm},
		})
	}
	if id.FEI == "" {
		id.FEI = r.resolveField(ctx, in, "fei", []tier{
			{"feed", func(context.Context) (string, bool) { return feedFEI(in) }},
			{"patterns", func(context.Context) (string, bool) { return searchFEI(in.Text) }},
			{"llm", pass.fei},
		})
	}
	return id
}

func (r *Resolver) resolveField(ctx context.Context, in Input, field string, tiers []tier) string {
	for _, t := range tiers {
		if v, ok := t.run(ctx); ok {
			r.logger.Info("firm.resolve.field", "file", in.Filename, "field", field, "tier", t.name, "value", v)
			return v
		}
	}
	r.logger.Warn("firm.resolve.unresolved", "file", in.Filename, "field", field)
	return ""
}

// Feed values are authoritative and pass through unvalidated; only the
// sentinels are treated as absent.

func feedName(in Input) (string, bool) {
	rec, ok := feedRecord(in)
	if !ok || rec.Firm == "" || rec.Firm == constants.UnknownFirm {
		return "", false
	}
	return rec.Firm, true
}

func feedFEI(in Input) (string, bool) {
	rec, ok := feedRecord(in)
	if !ok || rec.FEI == "" || rec.FEI == constants.NoFEI {
		return "", false
	}
	return rec.FEI, true
}

func feedRecord(in Input) (metadata.FirmRecord, bool) {
	id, ok := mediaid.FromFilename(in.Filename)
	if !ok {
		return metadata.FirmRecord{}, false
	}
	return in.Mapping.Lookup(id)
}

// llmPass holds the lazily-run LLM extraction shared by both fields. The call
// happens the first time an unresolved field reaches the LLM tier and its
// result is reused for the other field.
type llmPass struct {
	r       *Resolver
	in      Input
	done    bool
	firmVal string
	feiVal  string
}

func (p *llmPass) firm(ctx context.Context) (string, bool) {
	p.run(ctx)
	return p.firmVal, p.firmVal != ""
}

func (p *llmPass) fei(ctx context.Context) (string, bool) {
	p.run(ctx)
	return p.feiVal, p.feiVal != ""
}

func (p *llmPass) run(ctx context.Context) {
	if p.done {
		return
	}
	p.done = true
	if p.r.chat == nil {
		p.firmVal, p.feiVal = reducedScan(truncate(p.in.Text, llmExcerptChars))
		return
	}
	p.firmVal, p.feiVal = p.r.extractIdentity(ctx, p.in)
}

// extractIdentity asks the model for both fields in one strict-JSON call. A
// reply that misses the schema gets one lenient normalize pass and a re-check.
// A failed call (transport, schema mismatch, undecodable body) falls back to
// the reduced pattern scan over the same excerpt. Model output goes through
// the same validation as pattern candidates.
func (r *Resolver) extractIdentity(ctx context.Context, in Input) (string, string) {
	excerpt := truncate(in.Text, llmExcerptChars)

	raw, err := r.chat.CompleteJSON(ctx, llm.ChatRequest{
		System:      identitySystemPrompt,
		User:        buildIdentityPrompt(excerpt),
		Temperature: identityTemperature,
	})
	if err != nil {
		r.logger.Warn("firm.llm.failed", "file", in.Filename, "error", err)
		return reducedScan(excerpt)
	}

	// Validate strictly first; on a miss, normalize the reply and re-validate.
	if err := llm.ValidateJSONAgainstSchema(llm.FirmInfoSchema(), raw); err != nil {
		cleaned, changed, nErr := llm.NormalizeIdentityJSON(raw)
		if nErr != nil {
			r.logger.Warn("firm.llm.schema_mismatch", "file", in.Filename, "error", err)
			return reducedScan(excerpt)
		}
		if vErr := llm.ValidateJSONAgainstSchema(llm.FirmInfoSchema(), cleaned); vErr != nil {
			r.logger.Warn("firm.llm.schema_mismatch", "file", in.Filename, "error", vErr)
			return reducedScan(excerpt)
		}
		r.logger.Warn("firm.llm.normalize_applied", "file", in.Filename, "changed", changed)
		raw = cleaned
	}

	var payload struct {
		Firm string `json:"firm"`
		FEI  any    `json:"fei"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		r.logger.Warn("firm.llm.decode_failed", "file", in.Filename, "error", err)
		return reducedScan(excerpt)
	}

	var name, fei string
	if payload.Firm != "" && payload.Firm != constants.UnknownFirm {
		if v, err := ValidateFirmName(payload.Firm); err == nil {
			name = v
		} else {
			r.logger.Debug("firm.llm.rejected", "file", in.Filename, "error", err)
		}
	}
	if s := cast.ToString(payload.FEI); s != "" && s != constants.NoFEI {
		if v, err := ValidateFEI(s); err == nil {
			fei = v
		} else {
			r.logger.Debug("firm.llm.rejected", "file", in.Filename, "error", err)
		}
	}
	return name, fei
}

// reducedScan is the last-resort pattern pass over the LLM excerpt.
func reducedScan(excerpt string) (string, string) {
	name, _ := scanPatterns(reducedFirmPatterns, excerpt, ValidateFirmName)
	fei, _ := scanPatterns(reducedFEIPatterns, excerpt, ValidateFEI)
	return name, fei
}

package firm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/llm"
	"github.com/complianceworks/fda483/internal/metadata"
)

type fakeChat struct {
	calls    int
	lastReq  llm.ChatRequest
	response []byte
	err      error
}

func (f *fakeChat) CompleteJSON(_ context.Context, req llm.ChatRequest) ([]byte, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeChat) Model() string { return "fake-model" }

// inertText matches none of the identity patterns.
const inertText = "421 deviations were noted in the batch log\n"

func TestResolveHintWins(t *testing.T) {
	chat := &fakeChat{}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_189344.pdf",
		Text:     "Firm Name: Somebody Else Entirely Inc\nFEI: 3009999999\n",
		Hint:     Identity{Name: "Hint Pharma Inc", FEI: "3001230000"},
	})

	assert.Equal(t, Identity{Name: "Hint Pharma Inc", FEI: "3001230000"}, id)
	assert.Zero(t, chat.calls)
}

func TestResolveFeedTierIsAuthoritative(t *testing.T) {
	chat := &fakeChat{}
	r := NewResolver(chat, nil)

	// The feed value would fail candidate validation; it must still pass
	// through untouched.
	mapping := metadata.Mapping{"189344": {Firm: "Elm Street Compounding LLC", FEI: "3001230000"}}

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_189344.pdf",
		Text:     "Firm Name: Pattern Tier Labs Inc\nFEI: 3005550001\n",
		Mapping:  mapping,
	})

	assert.Equal(t, Identity{Name: "Elm Street Compounding LLC", FEI: "3001230000"}, id)
	assert.Zero(t, chat.calls)
}

func TestResolveFeedSentinelsFallThrough(t *testing.T) {
	chat := &fakeChat{}
	r := NewResolver(chat, nil)

	mapping := metadata.Mapping{"189344": {Firm: constants.UnknownFirm, FEI: constants.NoFEI}}

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_189344.pdf",
		Text:     "Firm Name: Pattern Tier Labs Inc\nFEI: 3005550001\n",
		Mapping:  mapping,
	})

	assert.Equal(t, Identity{Name: "Pattern Tier Labs Inc", FEI: "3005550001"}, id)
	assert.Zero(t, chat.calls)
}

func TestResolvePatternTierSkipsLLM(t *testing.T) {
	chat := &fakeChat{response: []byte(`{"firm":"Should Not Be Used Inc","fei":"1112223334"}`)}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     "Firm Name: Pattern Tier Labs Inc\nFEI Number: 3005550001\n",
	})

	assert.Equal(t, Identity{Name: "Pattern Tier Labs Inc", FEI: "3005550001"}, id)
	assert.Zero(t, chat.calls)
}

func TestResolveLLMTierSingleCallForBothFields(t *testing.T) {
	chat := &fakeChat{response: []byte(`{"firm":"Modelled Pharma Inc","fei":3001234567}`)}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     inertText,
	})

	assert.Equal(t, Identity{Name: "Modelled Pharma Inc", FEI: "3001234567"}, id)
	assert.Equal(t, 1, chat.calls)
	assert.Equal(t, identitySystemPrompt, chat.lastReq.System)
	assert.Contains(t, chat.lastReq.User, "first 4000 characters")
	assert.Contains(t, chat.lastReq.User, strings.TrimSpace(inertText))
	assert.InDelta(t, 0.1, float64(chat.lastReq.Temperature), 1e-6)
}

func TestResolveLLMNeverOverwritesPatternField(t *testing.T) {
	chat := &fakeChat{response: []byte(`{"firm":"Model Labs Inc","fei":"1112223334"}`)}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     "facility review follows\nFEI Number: 3009998887\n" + inertText,
	})

	assert.Equal(t, Identity{Name: "Model Labs Inc", FEI: "3009998887"}, id)
	assert.Equal(t, 1, chat.calls)
}

func TestResolveLLMFailureFallsBackToReducedScan(t *testing.T) {
	chat := &fakeChat{err: errors.New("connection reset")}
	r := NewResolver(chat, nil)

	// "Updated" trips the Date stop word in the main patterns, so only the
	// reduced scan can recover the name.
	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     "Firm Name: Updated Labs Inc\n",
	})

	assert.Equal(t, Identity{Name: "Updated Labs Inc"}, id)
	assert.Equal(t, 1, chat.calls)
}

func TestResolveLLMSchemaMismatchFallsBackToReducedScan(t *testing.T) {
	// A non-string firm survives the normalize pass and still misses the schema.
	chat := &fakeChat{response: []byte(`{"firm":12345,"fei":"3001234567"}`)}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     "Firm Name: Updated Labs Inc\n",
	})

	assert.Equal(t, Identity{Name: "Updated Labs Inc"}, id)
	assert.Equal(t, 1, chat.calls)
}

func TestResolveLLMNearMissRescuedByNormalize(t *testing.T) {
	chat := &fakeChat{response: []byte(`{"firm_name":"Synonym Pharma Inc","fei_number":"3001234567","confidence":0.9}`)}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     inertText,
	})

	assert.Equal(t, Identity{Name: "Synonym Pharma Inc", FEI: "3001234567"}, id)
	assert.Equal(t, 1, chat.calls)
}

func TestResolveLLMMissingFEILeavesFieldUnresolved(t *testing.T) {
	chat := &fakeChat{response: []byte(`{"firm":"Partial Reply Labs Inc"}`)}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     inertText,
	})

	assert.Equal(t, Identity{Name: "Partial Reply Labs Inc"}, id)
	assert.Equal(t, 1, chat.calls)
}

func TestResolveLLMSentinelsLeaveFieldsUnresolved(t *testing.T) {
	chat := &fakeChat{response: []byte(`{"firm":"Unknown","fei":"N/A"}`)}
	r := NewResolver(chat, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     inertText,
	})

	assert.Equal(t, Identity{}, id)
	assert.Equal(t, Info{Firm: constants.UnknownFirm, FEI: constants.NoFEI}, id.Export())
}

func TestResolveNilChatRunsReducedScan(t *testing.T) {
	r := NewResolver(nil, nil)

	id := r.Resolve(context.Background(), Input{
		Filename: "FDA_77001.pdf",
		Text:     "Firm Name: Updated Labs Inc\nFEI: 3001234567\n",
	})

	require.Equal(t, "Updated Labs Inc", id.Name)
	assert.Equal(t, "3001234567", id.FEI)
}

func TestIdentityExportRoundTrip(t *testing.T) {
	assert.Equal(t, Info{Firm: "Acme Pharma Inc", FEI: "3001234567"},
		Identity{Name: "Acme Pharma Inc", FEI: "3001234567"}.Export())

	assert.Equal(t, Identity{}, FromInfo(Info{Firm: constants.UnknownFirm, FEI: constants.NoFEI}))
	assert.Equal(t, Identity{Name: "Acme Pharma Inc"}, FromInfo(Info{Firm: "Acme Pharma Inc", FEI: constants.NoFEI}))
}

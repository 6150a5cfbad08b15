package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solscope/internal"
	"solscope/internal/ai"
)

type stubBackend struct {
	answer string
	err    error
	calls  int
}

func (s *stubBackend) Answer(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubBackend) GetName() string { return "stub" }
func (s *stubBackend) Close() error    { return nil }

func classifiedKnowledge() *internal.Knowledge {
	return &internal.Knowledge{
		Address:      "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		ContractType: "ERC20-like (token contract)",
		Functions: []internal.FunctionRecord{
			{Name: "constructor", Visibility: "public", Mutability: "nonpayable", Access: internal.AccessPublic},
			{Name: "transfer", Visibility: "public", Mutability: "nonpayable", Access: internal.AccessPublic},
			{Name: "balanceOf", Visibility: "public", Mutability: "view", Access: internal.AccessPublic},
			{Name: "withdraw", Visibility: "public", Mutability: "nonpayable", Access: internal.AccessRestricted, AccessRole: internal.RoleOwner},
			{Name: "_mint", Visibility: "internal", Mutability: "nonpayable", Access: internal.AccessInternal},
		},
		Events: []string{"Transfer", "Approval"},
	}
}

func TestAdminQuestionIsDeterministic(t *testing.T) {
	backend := &stubBackend{answer: "must not be used"}
	resolver := New(backend)

	answer := resolver.Answer(context.Background(), "who can call admin functions", classifiedKnowledge())

	assert.Equal(t, "Functions restricted to admin or owner: withdraw", answer)
	assert.Zero(t, backend.calls, "deterministic matcher must not invoke the backend")
}

func TestAdminQuestionNoneFound(t *testing.T) {
	kb := &internal.Knowledge{
		Functions: []internal.FunctionRecord{
			{Name: "transfer", Access: internal.AccessPublic},
		},
	}
	resolver := New(&stubBackend{})

	answer := resolver.Answer(context.Background(), "any admin backdoors?", kb)
	assert.Equal(t, "No admin-restricted functions found.", answer)
}

func TestPublicQuestionExcludesConstructor(t *testing.T) {
	resolver := New(&stubBackend{})

	answer := resolver.Answer(context.Background(), "what can anyone call?", classifiedKnowledge())

	assert.Contains(t, answer, "transfer")
	assert.Contains(t, answer, "balanceOf")
	assert.NotContains(t, answer, "constructor")
	assert.NotContains(t, answer, "_mint")
}

func TestViewQuestion(t *testing.T) {
	resolver := New(&stubBackend{})

	answer := resolver.Answer(context.Background(), "which functions are view only", classifiedKnowledge())
	assert.Equal(t, "Read-only (view) functions: balanceOf", answer)
}

func TestTransferEventQuestion(t *testing.T) {
	resolver := New(&stubBackend{})

	answer := resolver.Answer(context.Background(), "does it emit an event on transfer?", classifiedKnowledge())
	assert.Equal(t, "The contract emits the 'Transfer' event when tokens are transferred.", answer)

	kb := classifiedKnowledge()
	kb.Events = []string{"Approval"}
	answer = resolver.Answer(context.Background(), "does it emit an event on transfer?", kb)
	assert.Equal(t, "This contract does not emit a 'Transfer' event.", answer)
}

func TestMatcherPriorityOrder(t *testing.T) {
	resolver := New(&stubBackend{})

	// "admin" outranks "public" when both triggers are present.
	answer := resolver.Answer(context.Background(), "are admin functions public?", classifiedKnowledge())
	assert.Equal(t, "Functions restricted to admin or owner: withdraw", answer)
}

func TestUnmatchedQuestionEscalatesToBackend(t *testing.T) {
	backend := &stubBackend{answer: "The contract locks deposits for 7 days."}
	resolver := New(backend)

	answer := resolver.Answer(context.Background(), "how long are deposits locked?", classifiedKnowledge())

	assert.Equal(t, "The contract locks deposits for 7 days.", answer)
	assert.Equal(t, 1, backend.calls)
}

func TestBackendNotInstalled(t *testing.T) {
	backend := &stubBackend{err: fmt.Errorf("%w: ollama", ai.ErrNotInstalled)}
	resolver := New(backend)

	answer := resolver.Answer(context.Background(), "how long are deposits locked?", classifiedKnowledge())
	assert.Equal(t, "Generative backend is not installed", answer)
}

func TestBackendFailureBecomesDiagnosticString(t *testing.T) {
	backend := &stubBackend{err: fmt.Errorf("exit status 1, stderr: model not found")}
	resolver := New(backend)

	answer := resolver.Answer(context.Background(), "how long are deposits locked?", classifiedKnowledge())
	assert.Contains(t, answer, "Error running generative backend")
	assert.Contains(t, answer, "model not found")
}

func TestNilBackend(t *testing.T) {
	resolver := New(nil)

	answer := resolver.Answer(context.Background(), "how long are deposits locked?", classifiedKnowledge())
	assert.Equal(t, "Generative backend is not installed", answer)
}

func TestBuildAuditPromptCarriesQuestionAndSummary(t *testing.T) {
	prompt := BuildAuditPrompt("who is the owner?", "Detected contract type: generic smart contract")

	require.Contains(t, prompt, "Question: who is the owner?")
	require.Contains(t, prompt, "Detected contract type: generic smart contract")
	assert.Contains(t, prompt, `say "Not enough information"`)
}

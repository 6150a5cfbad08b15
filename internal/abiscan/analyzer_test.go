package abiscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePartitionsByKind(t *testing.T) {
	entries := []Entry{
		{Type: "function", Name: "transfer", StateMutability: "nonpayable"},
		{Type: "function", Name: "balanceOf", StateMutability: "view"},
		{Type: "function", Name: "deposit", StateMutability: "payable"},
		{Type: "function", Name: "changeAdmin", StateMutability: "nonpayable"},
		{Type: "function", Name: "transferOwnership", StateMutability: "nonpayable"},
		{Type: "event", Name: "Transfer"},
		{Type: "event", Name: "Approval"},
		{Type: "constructor"},
		{Type: "fallback"},
	}

	s := Analyze(entries)

	// Counts partition the input: every entry lands in exactly one bucket.
	total := s.TotalFunctions + s.TotalEvents + s.TotalConstructors + s.TotalFallbacks
	assert.Equal(t, len(entries), total)

	assert.Equal(t, 5, s.TotalFunctions)
	assert.Equal(t, 2, s.TotalEvents)
	assert.Equal(t, 1, s.TotalConstructors)
	assert.Equal(t, 1, s.TotalFallbacks)

	assert.Equal(t, []string{"transfer", "balanceOf", "deposit", "changeAdmin", "transferOwnership"}, s.PublicFunctions)
	assert.Equal(t, []string{"balanceOf"}, s.ViewFunctions)
	assert.Equal(t, []string{"deposit"}, s.PayableFunctions)
	assert.Equal(t, []string{"Transfer", "Approval"}, s.EmittedEvents)

	// Name-based owner signal is case-insensitive substring matching.
	assert.Equal(t, []string{"changeAdmin", "transferOwnership"}, s.OwnerRelated)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	s := Analyze(nil)

	assert.Zero(t, s.TotalFunctions)
	assert.Zero(t, s.TotalEvents)
	assert.Empty(t, s.PublicFunctions)
	assert.Empty(t, s.ViewFunctions)
	assert.Empty(t, s.PayableFunctions)
	assert.Empty(t, s.OwnerRelated)
	assert.Empty(t, s.EmittedEvents)
}

func TestDecode(t *testing.T) {
	data := []byte(`[
		{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"type":"address","name":"to"},{"type":"uint256","name":"amount"}]},
		{"type":"event","name":"Transfer"}
	]`)

	entries, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "transfer", entries[0].Name)
	assert.Len(t, entries[0].Inputs, 2)
}

func TestDecodeRejectsNonJSON(t *testing.T) {
	_, err := Decode([]byte("Contract source code not verified"))
	assert.Error(t, err)
}

func TestSelector(t *testing.T) {
	e := Entry{
		Type: "function",
		Name: "transfer",
		Inputs: []Argument{
			{Type: "address", Name: "to"},
			{Type: "uint256", Name: "amount"},
		},
	}

	// Canonical ERC20 transfer selector.
	assert.Equal(t, "0xa9059cbb", Selector(e))
}

func TestSelectorNoArgs(t *testing.T) {
	e := Entry{Type: "function", Name: "totalSupply"}
	assert.Equal(t, "0x18160ddd", Selector(e))
}

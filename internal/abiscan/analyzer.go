package abiscan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Entry is one decoded ABI item. Name is absent for constructors and
// fallbacks, StateMutability for events.
type Entry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Inputs          []Argument `json:"inputs,omitempty"`
}

type Argument struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Summary 接口视图的分类结果
// The owner-related list is name-based only: the ABI never sees modifiers, so
// this signal is weaker than the source-side access classification and is kept
// for contracts whose source is unavailable.
type Summary struct {
	TotalFunctions    int               `json:"total_functions"`
	TotalEvents       int               `json:"total_events"`
	TotalConstructors int               `json:"total_constructors"`
	TotalFallbacks    int               `json:"total_fallbacks"`
	PublicFunctions   []string          `json:"public_functions"`
	ViewFunctions     []string          `json:"view_functions"`
	PayableFunctions  []string          `json:"payable_functions"`
	OwnerRelated      []string          `json:"owner_related_functions"`
	EmittedEvents     []string          `json:"emitted_events"`
	Selectors         map[string]string `json:"selectors,omitempty"`
}

// Decode parses a persisted ABI JSON blob into entries.
func Decode(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ABI: %w", err)
	}
	return entries, nil
}

// Analyze partitions the entries by kind and derives the per-kind name lists.
// Pure function of its input; empty input yields empty lists.
func Analyze(entries []Entry) *Summary {
	s := &Summary{
		PublicFunctions:  make([]string, 0),
		ViewFunctions:    make([]string, 0),
		PayableFunctions: make([]string, 0),
		OwnerRelated:     make([]string, 0),
		EmittedEvents:    make([]string, 0),
		Selectors:        make(map[string]string),
	}

	for _, e := range entries {
		switch e.Type {
		case "function":
			s.TotalFunctions++
			s.PublicFunctions = append(s.PublicFunctions, e.Name)
			if e.StateMutability == "view" {
				s.ViewFunctions = append(s.ViewFunctions, e.Name)
			}
			if e.StateMutability == "payable" {
				s.PayableFunctions = append(s.PayableFunctions, e.Name)
			}
			lower := strings.ToLower(e.Name)
			if strings.Contains(lower, "admin") || strings.Contains(lower, "owner") {
				s.OwnerRelated = append(s.OwnerRelated, e.Name)
			}
			s.Selectors[e.Name] = Selector(e)
		case "event":
			s.TotalEvents++
			s.EmittedEvents = append(s.EmittedEvents, e.Name)
		case "constructor":
			s.TotalConstructors++
		case "fallback":
			s.TotalFallbacks++
		}
	}

	return s
}

// Selector returns the 4-byte selector of a function entry, derived from the
// canonical signature name(type1,type2,...).
func Selector(e Entry) string {
	types := make([]string, 0, len(e.Inputs))
	for _, in := range e.Inputs {
		types = append(types, in.Type)
	}
	sig := fmt.Sprintf("%s(%s)", e.Name, strings.Join(types, ","))
	hash := crypto.Keccak256([]byte(sig))
	return fmt.Sprintf("0x%x", hash[:4])
}

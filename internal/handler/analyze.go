package handler

import (
	"fmt"

	"solscope/internal"
	"solscope/internal/abiscan"
	"solscope/internal/classify"
	"solscope/internal/logger"
	"solscope/internal/report"
	"solscope/internal/srcparse"
	"solscope/internal/store"
)

// Result bundles the two analysis views of one contract with the rendered
// digest. The knowledge base inside is fully classified: every function
// record carries an access verdict before this function returns.
type Result struct {
	Knowledge  *internal.Knowledge
	ABISummary *abiscan.Summary
	Digest     string
}

// AnalyzeContract loads the persisted artifacts for an address and runs the
// extraction and classification pipeline over them. Missing artifacts are
// fatal; a malformed ABI blob (e.g. an unverified contract placeholder)
// degrades to an empty interface view since the source scan still works.
func AnalyzeContract(st *store.Store, address string) (*Result, error) {
	abiData, err := st.LoadABI(address)
	if err != nil {
		return nil, err
	}
	source, err := st.LoadSource(address)
	if err != nil {
		return nil, err
	}

	entries, err := abiscan.Decode(abiData)
	if err != nil {
		logger.Warn("ABI for %s is not decodable, continuing with source view only: %v", address, err)
		entries = nil
	}
	summary := abiscan.Analyze(entries)

	extracted := srcparse.Extract(source)

	kb := &internal.Knowledge{
		Address:        address,
		Pragma:         extracted.Pragma,
		Contracts:      extracted.Contracts,
		Imports:        extracted.Imports,
		Modifiers:      extracted.Modifiers,
		Functions:      extracted.Functions,
		StateVariables: extracted.StateVariables,
		Events:         summary.EmittedEvents,
	}

	// Classification must complete before any question is resolved.
	classify.Apply(kb)
	kb.ContractType = classify.DetectContractType(kb)

	digest := report.Render(kb)

	logger.InfoFileOnly("analyzed %s: %d contracts, %d functions, %d modifiers, %d ABI entries",
		address, len(kb.Contracts), len(kb.Functions), len(kb.Modifiers),
		summary.TotalFunctions+summary.TotalEvents+summary.TotalConstructors+summary.TotalFallbacks)

	return &Result{
		Knowledge:  kb,
		ABISummary: summary,
		Digest:     digest,
	}, nil
}

// RenderABISummary formats the interface-only view, used when no source text
// is available for an address.
func RenderABISummary(address string, s *abiscan.Summary) string {
	return fmt.Sprintf(
		"Interface summary for %s:\n"+
			" - functions: %d (view: %d, payable: %d)\n"+
			" - events: %d\n"+
			" - constructors: %d, fallbacks: %d\n"+
			" - owner-related names: %v",
		address,
		s.TotalFunctions, len(s.ViewFunctions), len(s.PayableFunctions),
		s.TotalEvents,
		s.TotalConstructors, s.TotalFallbacks,
		s.OwnerRelated,
	)
}

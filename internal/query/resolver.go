package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"solscope/internal"
	"solscope/internal/ai"
	"solscope/internal/logger"
	"solscope/internal/report"
)

// Resolver answers free-text questions against a classified knowledge base.
// A small set of deterministic intent matchers runs first, in fixed priority
// order; only when none of their trigger words are present does the resolver
// escalate to the generative backend.
type Resolver struct {
	backend ai.Client
}

func New(backend ai.Client) *Resolver {
	return &Resolver{backend: backend}
}

// Answer never returns an error: backend failures are absorbed into a
// user-visible diagnostic string so the interactive loop keeps running.
func (r *Resolver) Answer(ctx context.Context, question string, kb *internal.Knowledge) string {
	if answer, ok := r.ruleBasedAnswer(question, kb); ok {
		return answer
	}
	return r.backendAnswer(ctx, question, kb)
}

// ruleBasedAnswer tries the intent matchers top to bottom; first trigger
// match wins. Each matcher returns a non-empty sentence, never "".
func (r *Resolver) ruleBasedAnswer(question string, kb *internal.Knowledge) (string, bool) {
	q := strings.ToLower(question)

	if strings.Contains(q, "admin") {
		names := functionNames(kb, func(fn internal.FunctionRecord) bool {
			return fn.Access == internal.AccessRestricted
		})
		if len(names) == 0 {
			return "No admin-restricted functions found.", true
		}
		return fmt.Sprintf("Functions restricted to admin or owner: %s", strings.Join(names, ", ")), true
	}

	if strings.Contains(q, "public") || strings.Contains(q, "anyone") {
		names := functionNames(kb, func(fn internal.FunctionRecord) bool {
			return fn.Access == internal.AccessPublic && strings.ToLower(fn.Name) != "constructor"
		})
		if len(names) == 0 {
			return "No public functions found.", true
		}
		return fmt.Sprintf("Functions callable by anyone: %s", strings.Join(names, ", ")), true
	}

	if strings.Contains(q, "view") {
		names := functionNames(kb, func(fn internal.FunctionRecord) bool {
			return fn.Mutability == "view"
		})
		if len(names) == 0 {
			return "No view functions found.", true
		}
		return fmt.Sprintf("Read-only (view) functions: %s", strings.Join(names, ", ")), true
	}

	if strings.Contains(q, "event") && strings.Contains(q, "transfer") {
		for _, e := range kb.Events {
			if strings.ToLower(e) == "transfer" {
				return "The contract emits the 'Transfer' event when tokens are transferred.", true
			}
		}
		return "This contract does not emit a 'Transfer' event.", true
	}

	return "", false
}

func (r *Resolver) backendAnswer(ctx context.Context, question string, kb *internal.Knowledge) string {
	if r.backend == nil {
		return "Generative backend is not installed"
	}

	prompt := BuildAuditPrompt(question, report.Render(kb))

	answer, err := r.backend.Answer(ctx, prompt)
	if err != nil {
		if errors.Is(err, ai.ErrNotInstalled) {
			return "Generative backend is not installed"
		}
		logger.Warn("backend answer failed: %v", err)
		return fmt.Sprintf("Error running generative backend: %v", err)
	}
	return answer
}

func functionNames(kb *internal.Knowledge, keep func(internal.FunctionRecord) bool) []string {
	names := make([]string, 0)
	for _, fn := range kb.Functions {
		if keep(fn) {
			names = append(names, fn.Name)
		}
	}
	return names
}

package srcparse

import (
	"regexp"
	"strings"

	"solscope/internal"
)

// Pattern scans over a single flattened source blob. Each extraction is an
// independent best-effort scan, not a grammar: declarations inside comments
// or strings are not filtered out, and the state-variable pattern will also
// match local declarations of the same shape. Partial matches produce fewer
// records, never an error.
var (
	pragmaPattern   = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)
	contractPattern = regexp.MustCompile(`contract\s+(\w+)(?:\s+is\s+([^{]+))?\s*\{`)
	importPattern   = regexp.MustCompile(`import\s+["']([^"']+)["'];`)
	modifierPattern = regexp.MustCompile(`modifier\s+(\w+)\s*\(`)

	// Function headers: optional name, params, optional visibility and
	// mutability keywords, then a bare-word run holding user modifiers.
	// RE2 has no lookahead, so the word run also swallows a trailing
	// "returns" keyword; ExtractFunctions strips it and reads the
	// parenthesized return list from the text right after the match.
	funcPattern    = regexp.MustCompile(`(?:function|constructor)\s*(\w*)\s*\(([^)]*)\)\s*(public|external|internal|private)?\s*(view|pure|payable)?\s*((?:\w+\s*)*)`)
	returnsPattern = regexp.MustCompile(`^\(([^)]*)\)`)

	varPattern = regexp.MustCompile(`(?:(?:public|private|internal|external)\s+)?(?:constant\s+)?(\w+)\s+(\w+)\s*(?:=\s*[^;]+)?;`)
)

// reservedWords are the declaration keywords that never count as user
// modifiers in a function header.
var reservedWords = map[string]struct{}{
	"public":   {},
	"external": {},
	"internal": {},
	"private":  {},
	"view":     {},
	"pure":     {},
	"payable":  {},
	"returns":  {},
}

// Result 源码提取出的五类记录
type Result struct {
	Pragma         string
	Contracts      []internal.ContractDeclaration
	Imports        []string
	Modifiers      []string
	Functions      []internal.FunctionRecord
	StateVariables []internal.StateVariable
}

// Extract runs all scans over the source blob. Every scan runs to completion
// regardless of what the others found; empty record lists are valid.
func Extract(source string) *Result {
	return &Result{
		Pragma:         ExtractPragma(source),
		Contracts:      ExtractContracts(source),
		Imports:        ExtractImports(source),
		Modifiers:      ExtractModifiers(source),
		Functions:      ExtractFunctions(source),
		StateVariables: ExtractStateVariables(source),
	}
}

// ExtractPragma returns the first declared solidity version constraint, or "".
func ExtractPragma(source string) string {
	if m := pragmaPattern.FindStringSubmatch(source); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractContracts returns contract declarations in discovery order, with the
// "is" base list comma-split and trimmed.
func ExtractContracts(source string) []internal.ContractDeclaration {
	contracts := make([]internal.ContractDeclaration, 0)
	for _, m := range contractPattern.FindAllStringSubmatch(source, -1) {
		decl := internal.ContractDeclaration{Name: m[1], Inherits: []string{}}
		if m[2] != "" {
			for _, base := range strings.Split(m[2], ",") {
				if b := strings.TrimSpace(base); b != "" {
					decl.Inherits = append(decl.Inherits, b)
				}
			}
		}
		contracts = append(contracts, decl)
	}
	return contracts
}

// ExtractImports returns quoted import paths in order, duplicates preserved.
func ExtractImports(source string) []string {
	imports := make([]string, 0)
	for _, m := range importPattern.FindAllStringSubmatch(source, -1) {
		imports = append(imports, m[1])
	}
	return imports
}

// ExtractModifiers returns the deduplicated set of modifier definition names.
// Only presence matters, not count.
func ExtractModifiers(source string) []string {
	seen := make(map[string]struct{})
	modifiers := make([]string, 0)
	for _, m := range modifierPattern.FindAllStringSubmatch(source, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		modifiers = append(modifiers, m[1])
	}
	return modifiers
}

// ExtractFunctions recovers function and constructor headers. Anonymous
// headers are named "constructor" when the matched text contains that
// keyword, otherwise "fallback". Visibility defaults to public and mutability
// to nonpayable, mirroring the language's historical defaults so the records
// stay comparable to the ABI view.
func ExtractFunctions(source string) []internal.FunctionRecord {
	functions := make([]internal.FunctionRecord, 0)

	for _, idx := range funcPattern.FindAllStringSubmatchIndex(source, -1) {
		matched := source[idx[0]:idx[1]]
		name := group(source, idx, 1)
		rawParams := group(source, idx, 2)
		visibility := group(source, idx, 3)
		mutability := group(source, idx, 4)
		tail := group(source, idx, 5)

		words := strings.Fields(tail)
		rawReturns := ""
		if n := len(words); n > 0 && words[n-1] == "returns" {
			words = words[:n-1]
			if rm := returnsPattern.FindStringSubmatch(source[idx[1]:]); rm != nil {
				rawReturns = rm[1]
			}
		}

		modifiers := make([]string, 0)
		for _, w := range words {
			if _, reserved := reservedWords[w]; !reserved {
				modifiers = append(modifiers, w)
			}
		}

		if name == "" {
			if strings.Contains(matched, "constructor") {
				name = "constructor"
			} else {
				name = "fallback"
			}
		}
		if visibility == "" {
			visibility = "public"
		}
		if mutability == "" {
			mutability = "nonpayable"
		}

		functions = append(functions, internal.FunctionRecord{
			Name:       name,
			Params:     splitTypedList(rawParams),
			Visibility: visibility,
			Mutability: mutability,
			Returns:    splitTypedList(rawReturns),
			Modifiers:  modifiers,
		})
	}

	return functions
}

// ExtractStateVariables scans for statement-shaped variable declarations.
// The pattern is not scoped to contract-body top level and over-approximates:
// function-local declarations of the same shape are matched too.
func ExtractStateVariables(source string) []internal.StateVariable {
	variables := make([]internal.StateVariable, 0)
	for _, m := range varPattern.FindAllStringSubmatch(source, -1) {
		variables = append(variables, internal.StateVariable{Type: m[1], Name: m[2]})
	}
	return variables
}

// group returns the text of capture group n for a submatch index slice, or ""
// when the group did not participate.
func group(source string, idx []int, n int) string {
	start, end := idx[2*n], idx[2*n+1]
	if start < 0 {
		return ""
	}
	return source[start:end]
}

// splitTypedList splits a comma-separated "type name" list. The last
// whitespace token is the name; a single token means only a type was given.
func splitTypedList(raw string) []internal.Param {
	params := make([]internal.Param, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		if len(fields) == 1 {
			params = append(params, internal.Param{Type: fields[0]})
			continue
		}
		params = append(params, internal.Param{
			Type: strings.Join(fields[:len(fields)-1], " "),
			Name: fields[len(fields)-1],
		})
	}
	return params
}

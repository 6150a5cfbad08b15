package report

import (
	"fmt"
	"strings"

	"solscope/internal"
)

// accessModifiers get an explanatory annotation in the digest.
var accessModifiers = map[string]struct{}{
	"ifadmin":   {},
	"onlyowner": {},
}

// AnnotateStateVariables writes the semantic role into each state variable
// record whose name matches a storage heuristic. Rendering calls this first,
// so rendering is not idempotent on the raw variable list.
func AnnotateStateVariables(kb *internal.Knowledge) {
	for i := range kb.StateVariables {
		name := strings.ToLower(kb.StateVariables[i].Name)
		switch {
		case strings.Contains(name, "admin"):
			kb.StateVariables[i].SemanticRole = "admin_storage"
		case strings.Contains(name, "implement"):
			kb.StateVariables[i].SemanticRole = "implementation_storage"
		}
	}
}

// Render produces the deterministic ordered digest of the knowledge base:
// contract type, contracts, modifiers, functions, state variables. Empty
// sections are omitted.
func Render(kb *internal.Knowledge) string {
	AnnotateStateVariables(kb)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Detected contract type: %s\n", kb.ContractType))
	if kb.Address != "" {
		sb.WriteString(fmt.Sprintf("Address: %s\n", kb.Address))
	}
	if kb.Pragma != "" {
		sb.WriteString(fmt.Sprintf("Solidity version: %s\n", kb.Pragma))
	}

	if len(kb.Contracts) > 0 {
		sb.WriteString("\nContracts:\n")
		for _, c := range kb.Contracts {
			inherits := strings.Join(c.Inherits, ", ")
			if inherits == "" {
				inherits = "None"
			}
			sb.WriteString(fmt.Sprintf(" - %s (inherits: %s)\n", c.Name, inherits))
		}
	}

	if len(kb.Modifiers) > 0 {
		sb.WriteString("\nModifiers:\n")
		for _, m := range kb.Modifiers {
			if _, ok := accessModifiers[strings.ToLower(m)]; ok {
				sb.WriteString(fmt.Sprintf(" - %s: restricts access to admin/owner only\n", m))
			} else {
				sb.WriteString(fmt.Sprintf(" - %s\n", m))
			}
		}
	}

	if len(kb.Functions) > 0 {
		sb.WriteString("\nFunctions:\n")
		for _, fn := range kb.Functions {
			sb.WriteString(fmt.Sprintf(" - %s (%s) [%s]\n", fn.Name, renderParams(fn.Params), renderAttrs(fn)))
		}
	}

	if len(kb.StateVariables) > 0 {
		sb.WriteString("\nState variables:\n")
		for _, v := range kb.StateVariables {
			if v.SemanticRole != "" {
				sb.WriteString(fmt.Sprintf(" - %s %s %s\n", v.Type, v.Name, v.SemanticRole))
			} else {
				sb.WriteString(fmt.Sprintf(" - %s %s\n", v.Type, v.Name))
			}
		}
	}

	if len(kb.Events) > 0 {
		sb.WriteString("\nEvents:\n")
		for _, e := range kb.Events {
			sb.WriteString(fmt.Sprintf(" - %s\n", e))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderParams(params []internal.Param) string {
	if len(params) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, strings.TrimSpace(p.Type+" "+p.Name))
	}
	return strings.Join(parts, ", ")
}

func renderAttrs(fn internal.FunctionRecord) string {
	access := fn.Access
	if access == "" {
		access = "?"
	}
	if fn.AccessRole != "" {
		access = fmt.Sprintf("%s (%s)", access, fn.AccessRole)
	}
	mods := strings.Join(fn.Modifiers, ", ")
	if mods == "" {
		mods = "None"
	}
	returns := make([]string, 0, len(fn.Returns))
	for _, r := range fn.Returns {
		returns = append(returns, r.Type)
	}
	ret := strings.Join(returns, ", ")
	if ret == "" {
		ret = "None"
	}
	return fmt.Sprintf("%s, %s, access=%s, modifiers=%s, returns=%s",
		fn.Visibility, fn.Mutability, access, mods, ret)
}

package classify

import (
	"strings"

	"solscope/internal"
)

// DetectContractType returns a coarse categorical label for the contract.
// Rules are evaluated top to bottom and the first match wins; later rules
// assume earlier ones already excluded their cases.
func DetectContractType(kb *internal.Knowledge) string {
	names := make([]string, 0, len(kb.Contracts))
	for _, c := range kb.Contracts {
		names = append(names, strings.ToLower(c.Name))
	}
	funcs := make([]string, 0, len(kb.Functions))
	for _, fn := range kb.Functions {
		funcs = append(funcs, strings.ToLower(fn.Name))
	}

	if containsAny(funcs, "transfer") || containsAny(names, "erc20") {
		return "ERC20-like (token contract)"
	}
	if containsAny(funcs, "delegate") || containsAny(funcs, "upgrade") {
		return "proxy or upgradeable contract"
	}
	if containsAny(names, "vault") {
		return "vault-like contract"
	}
	return "generic smart contract"
}

func containsAny(items []string, sub string) bool {
	for _, item := range items {
		if strings.Contains(item, sub) {
			return true
		}
	}
	return false
}

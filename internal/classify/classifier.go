package classify

import (
	"strings"

	"solscope/internal"
)

// restrictedModifiers gate a function to a privileged role regardless of its
// declared visibility. The restricted verdict always wins over the
// visibility-based public one: an admin-gated public function is still
// reported as restricted, which is the real authorization surface.
var restrictedModifiers = map[string]struct{}{
	"ifadmin":   {},
	"onlyowner": {},
	"owneronly": {},
}

// Access computes the access verdict and role for one function record as a
// pure function of its modifiers (case-insensitive) and visibility.
func Access(fn internal.FunctionRecord) (access, role string) {
	hasRestricted := false
	hasIfAdmin := false
	for _, m := range fn.Modifiers {
		lower := strings.ToLower(m)
		if _, ok := restrictedModifiers[lower]; ok {
			hasRestricted = true
		}
		if lower == "ifadmin" {
			hasIfAdmin = true
		}
	}

	if hasRestricted {
		if hasIfAdmin {
			return internal.AccessRestricted, internal.RoleAdmin
		}
		return internal.AccessRestricted, internal.RoleOwner
	}

	vis := strings.ToLower(fn.Visibility)
	name := strings.ToLower(fn.Name)
	if vis == "public" || vis == "external" || name == "fallback" || name == "receive" {
		return internal.AccessPublic, ""
	}

	return internal.AccessInternal, ""
}

// Apply annotates every function record with its access verdict. This is the
// explicit second stage of the record lifecycle and must run to completion
// before any question is resolved against the knowledge base.
func Apply(kb *internal.Knowledge) {
	for i := range kb.Functions {
		kb.Functions[i].Access, kb.Functions[i].AccessRole = Access(kb.Functions[i])
	}
}

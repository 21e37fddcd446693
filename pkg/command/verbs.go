package command

import (
	"fmt"

	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/paths"
)

// methodVerbs maps methods to their canonical command verbs. GET is resolved
// from path shape instead. Initialized once and never mutated.
var methodVerbs = map[api.Method]string{
	api.MethodPost:    "create",
	api.MethodPut:     "update",
	api.MethodPatch:   "patch",
	api.MethodDelete:  "delete",
	api.MethodHead:    "head",
	api.MethodOptions: "options",
	api.MethodTrace:   "trace",
}

// baseVerb resolves the natural verb for an operation. GET on a collection
// path (last display segment is not a placeholder, bare "/" included) is
// "list"; GET ending in a placeholder is "get". Unmapped methods fall back to
// their own lower-cased name.
func baseVerb(method api.Method, display *paths.Template) string {
	if method == api.MethodGet {
		if display.EndsWithParam() {
			return "get"
		}
		return "list"
	}

	if verb, ok := methodVerbs[method]; ok {
		return verb
	}
	return method.Lower()
}

// claimVerb resolves verb collisions within one group. The first operation to
// claim a verb keeps it; later claimants get the method name suffixed, and
// numbered variants cover anything beyond that.
func claimVerb(claimed map[string]struct{}, base string, method api.Method) string {
	if _, ok := claimed[base]; !ok {
		claimed[base] = struct{}{}
		return base
	}

	suffixed := base + "-" + method.Lower()
	if _, ok := claimed[suffixed]; !ok {
		claimed[suffixed] = struct{}{}
		return suffixed
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", suffixed, i)
		if _, ok := claimed[candidate]; !ok {
			claimed[candidate] = struct{}{}
			return candidate
		}
	}
}

package field

import "github.com/microcosm-cc/bluemonday"

// Suggestion names come from a remote service and element writes text
// verbatim, so everything remote goes through a strict policy that strips
// markup and escapes what is left.
var policy = bluemonday.StrictPolicy()

func clean(s string) string {
	return policy.Sanitize(s)
}

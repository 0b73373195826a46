package binding

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// SanitizeStrict strips every HTML element and attribute.
	SanitizeStrict = "strict"
	// SanitizeUGC keeps the markup bluemonday considers safe for user content.
	SanitizeUGC = "ugc"
)

var (
	sanitizeOnce     sync.Once
	sanitizePolicies map[string]*bluemonday.Policy
)

func sanitizer(name string) (*bluemonday.Policy, bool) {
	sanitizeOnce.Do(func() {
		sanitizePolicies = map[string]*bluemonday.Policy{
			SanitizeStrict: bluemonday.StrictPolicy(),
			SanitizeUGC:    bluemonday.UGCPolicy(),
		}
	})
	policy, ok := sanitizePolicies[name]
	return policy, ok
}

// SanitizePolicies lists the policy names accepted by Param.Sanitize.
func SanitizePolicies() []string {
	return []string{SanitizeStrict, SanitizeUGC}
}

func sanitizeValue(policyName, raw string) string {
	if policyName == "" || raw == "" {
		return raw
	}
	policy, ok := sanitizer(policyName)
	if !ok {
		return raw
	}
	return policy.Sanitize(raw)
}

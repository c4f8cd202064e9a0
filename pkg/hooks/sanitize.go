package hooks

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-hydrate/pkg/model"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// SanitizeHTML strips every HTML element from the string leaves of the fill
// data. The result is plain text: entities are decoded, so "Tom & Jerry"
// stays as written.
func SanitizeHTML() model.BeforeFillHook {
	policy := strictSanitizer()
	return func(_ *model.Model, data any) (any, error) {
		return sanitizeTree(func(raw string) string {
			return html.UnescapeString(sanitizeString(policy, raw))
		}, data), nil
	}
}

// SanitizeUGC keeps the markup bluemonday considers safe for user generated
// content and removes the rest.
func SanitizeUGC() model.BeforeFillHook {
	return SanitizeWith(ugcSanitizer())
}

// SanitizeWith sanitizes string leaves with a caller supplied policy. The
// result is HTML, as produced by the policy. A nil policy falls back to
// SanitizeHTML.
func SanitizeWith(policy *bluemonday.Policy) model.BeforeFillHook {
	if policy == nil {
		return SanitizeHTML()
	}
	return func(_ *model.Model, data any) (any, error) {
		return sanitizeTree(func(raw string) string {
			return sanitizeString(policy, raw)
		}, data), nil
	}
}

func sanitizeTree(clean func(string) string, value any) any {
	switch v := value.(type) {
	case string:
		return clean(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = sanitizeTree(clean, item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizeTree(clean, item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = clean(item)
		}
		return out
	default:
		return value
	}
}

func sanitizeString(policy *bluemonday.Policy, raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return strings.TrimSpace(policy.Sanitize(raw))
}

func strictSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

func ugcSanitizer() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		ugcPolicy = policy
	})
	return ugcPolicy
}

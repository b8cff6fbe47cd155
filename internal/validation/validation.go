// Package validation holds one request schema per endpoint: required
// fields, length bounds, enumerations and query-string coercions.
// Validators return an Errors map from field path to violation
// messages; an empty map means the typed value is safe to hand to the
// service layer. Handlers never branch on unvalidated input.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

// Errors maps a field path to the list of violations recorded for it.
// It is the `errors` object of a 400 response.
type Errors map[string][]string

// Add records a violation for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no violations were recorded.
func (e Errors) Empty() bool { return len(e) == 0 }

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool { return emailRe.MatchString(s) }

// parsePage coerces a query parameter into a 1-based page number.
func parsePage(raw string, max int, errs Errors) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		errs.Add("page", "page must be a positive integer")
		return 1
	}
	if max > 0 && n > max {
		errs.Add("page", "page number too high")
		return 1
	}
	return n
}

// parseLimit coerces a query parameter into a page size within bounds.
func parseLimit(raw string, def, max int, errs Errors) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		errs.Add("limit", "limit must be between 1 and "+strconv.Itoa(max))
		return def
	}
	return n
}

// parseEnum returns the value when it is one of the allowed choices,
// otherwise records a violation and returns the default.
func parseEnum(field, raw, def string, allowed []string, errs Errors) string {
	if raw == "" {
		return def
	}
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	errs.Add(field, field+" must be one of: "+strings.Join(allowed, ", "))
	return def
}

// splitList splits a comma-separated query parameter into trimmed,
// non-empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

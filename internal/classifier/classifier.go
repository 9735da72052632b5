// Package classifier maps raw query text to a lookup category.
package classifier

import (
	"regexp"
	"strings"

	"github.com/imcoder44/FootprintX/internal/domain"
)

var (
	internationalPhonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	bareDigitsPhonePattern    = regexp.MustCompile(`^\d{10,15}$`)
	ipv4Pattern               = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	namePattern               = regexp.MustCompile(`^[a-z\s]+$`)
)

// Classify returns the query type for the given raw query. Rules are applied
// to the trimmed, lowercased query in a fixed order and the first match wins:
// phone, email, ip, name. Anything else is unknown.
func Classify(query string) domain.QueryType {
	q := Normalize(query)
	if q == "" {
		return domain.QueryTypeUnknown
	}

	switch {
	case internationalPhonePattern.MatchString(q) || bareDigitsPhonePattern.MatchString(q):
		return domain.QueryTypePhone
	case strings.Contains(q, "@") && strings.Contains(q, "."):
		return domain.QueryTypeEmail
	case ipv4Pattern.MatchString(q):
		return domain.QueryTypeIP
	case namePattern.MatchString(q):
		return domain.QueryTypeName
	default:
		return domain.QueryTypeUnknown
	}
}

// Normalize trims surrounding whitespace and lowercases the query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

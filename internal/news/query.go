package news

import (
	"fmt"
	"strings"
)

// marketImpactTerms widen an instrument query toward market-moving
// coverage rather than generic mentions.
const marketImpactTerms = `(breaking OR crisis OR disruption OR sanctions OR conflict OR shortage OR "supply chain" OR tariff)`

// BuildQuery produces the primary search query for an instrument or
// free-text input: exact-match quoting for multi-word names plus the
// market-impact disjunction.
func BuildQuery(input string) string {
	subject := strings.TrimSpace(input)
	if subject == "" {
		return marketImpactTerms
	}
	if strings.ContainsRune(subject, ' ') && !strings.HasPrefix(subject, `"`) {
		subject = fmt.Sprintf("%q", subject)
	}
	return subject + " " + marketImpactTerms
}

// BroaderQueries returns the bounded retry phrasings used when the
// primary query collects too few results: first without exact-match
// quoting, then the bare subject.
func BroaderQueries(input string) []string {
	subject := strings.TrimSpace(input)
	if subject == "" {
		return nil
	}
	unquoted := strings.Trim(subject, `"`)
	return []string{
		unquoted + " " + marketImpactTerms,
		unquoted + " news",
	}
}

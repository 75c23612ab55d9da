// Package enrich synthesizes default metadata for book records that have not
// been seen before. Category and tags come from keyword rules over the title
// and description; rating and stock are derived deterministically from the
// book ID so repeated enrichment always produces the same defaults.
package enrich

import "strings"

// categoryRule maps any keyword hit to a category. Rules are checked in
// order; the first match wins.
type categoryRule struct {
	keywords []string
	category string
}

var categoryRules = []categoryRule{
	{[]string{"cloud", "aws", "kubernetes"}, "Cloud"},
	{[]string{"devops"}, "DevOps"},
	{[]string{"data", "sql"}, "Data"},
	{[]string{"design", "ui", "ux"}, "Design"},
}

// defaultCategory is assigned when no rule matches.
const defaultCategory = "Technology"

// tagRule contributes one tag per keyword group hit.
type tagRule struct {
	keywords []string
	tag      string
}

var tagRules = []tagRule{
	{[]string{"aws"}, "AWS"},
	{[]string{"devops"}, "DevOps"},
	{[]string{"cloud"}, "Cloud"},
	{[]string{"docker"}, "Docker"},
	{[]string{"kubernetes", "k8s"}, "Kubernetes"},
}

// defaultTag is used when no tag rule matches.
const defaultTag = "General"

// GuessCategory assigns a category from keyword matches over the lowercased
// title and description. Matches are plain substring checks.
func GuessCategory(title, desc string) string {
	text := searchText(title, desc)
	for _, rule := range categoryRules {
		if containsAny(text, rule.keywords) {
			return rule.category
		}
	}
	return defaultCategory
}

// GuessTags collects tag keyword hits over the lowercased title and
// description. Books with no hits are tagged General.
func GuessTags(title, desc string) []string {
	text := searchText(title, desc)

	var tags []string
	for _, rule := range tagRules {
		if containsAny(text, rule.keywords) {
			tags = append(tags, rule.tag)
		}
	}
	if len(tags) == 0 {
		tags = []string{defaultTag}
	}
	return tags
}

func searchText(title, desc string) string {
	return strings.ToLower(title + " " + desc)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

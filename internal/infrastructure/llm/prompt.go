package llm

import (
	"fmt"
	"regexp"
	"strings"

	"NewsPoster/internal/domain"
)

func summaryPrompt(text string, length domain.SummaryLength) string {
	return fmt.Sprintf("Summarize the following news article in %d to %d words. "+
		"Reply with the summary only, without a preamble.\n\n%s", length.Min, length.Max, text)
}

func keywordPrompt(text string, topN int) string {
	return fmt.Sprintf("List the %d most relevant keywords or short keyphrases of the following text "+
		"as a single comma-separated line. Reply with the keywords only.\n\n%s", topN, text)
}

var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// parseKeywords splits a model reply on commas and new lines, stripping list
// bullets and numbering.
func parseKeywords(reply string, topN int) []string {
	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	keywords := make([]string, 0, len(fields))
	for _, field := range fields {
		kw := listMarker.ReplaceAllString(field, "")
		kw = strings.Trim(strings.TrimSpace(kw), `"'`)
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
		if topN > 0 && len(keywords) == topN {
			break
		}
	}
	return keywords
}

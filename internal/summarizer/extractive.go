package summarizer

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	briefPrefixRunes   = 200
	contentExcerptRune = 150
	topicCount         = 3
	minTopicRunes      = 4
	clauseSeparator    = " | "
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
		"is", "are", "was", "were", "be", "been", "have", "has", "had", "do", "does", "did",
		"will", "would", "could", "should", "may", "might", "can",
		"this", "that", "these", "those",
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
	} {
		stopWords[w] = struct{}{}
	}
}

type extractive struct{}

// NewExtractive returns the always-available frequency based strategy.
func NewExtractive() Strategy { return extractive{} }

func (extractive) Name() string { return "extractive" }

func (extractive) Summarize(_ context.Context, text string) (string, error) {
	return SummarizeExtractive(text), nil
}

// SummarizeExtractive is deterministic: identical input yields identical
// output.
func SummarizeExtractive(text string) string {
	if strings.TrimSpace(text) == "" {
		return NoContentMessage
	}

	sentences := splitSentences(text)
	if len(sentences) <= 2 {
		return "Brief discussion: " + prefixRunes(text, briefPrefixRunes) + "..."
	}

	var clauses []string
	if topics := keyTopics(text, topicCount); len(topics) > 0 {
		clauses = append(clauses, "Key topics discussed: "+strings.Join(topics, ", "))
	}

	clauses = append(clauses, fmt.Sprintf("Discussion contained %d main points", len(sentences)))

	if len([]rune(text)) > contentExcerptRune {
		clauses = append(clauses, "Main content: "+prefixRunes(text, contentExcerptRune)+"...")
	} else {
		clauses = append(clauses, "Content: "+text)
	}

	return strings.Join(clauses, clauseSeparator)
}

func splitSentences(text string) []string {
	normalized := strings.NewReplacer("!", ".", "?", ".").Replace(text)

	var sentences []string
	for _, s := range strings.Split(normalized, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// keyTopics ranks content tokens by frequency; ties keep first-occurrence
// order.
func keyTopics(text string, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, w := range strings.Fields(strings.ToLower(text)) {
		if _, stop := stopWords[w]; stop || len([]rune(w)) < minTopicRunes {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

func prefixRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

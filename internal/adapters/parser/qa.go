// Package parser provides the knowledge-document parsing adapter.
// It implements ports.PairParser with line-prefix heuristics: no line is ever
// rejected, ambiguous lines are absorbed into the open question's answer.
package parser

import (
	"regexp"
	"strings"

	"faqdesk/internal/domain/entities"
)

// questionMarker matches a leading Q followed by a digit, punctuation or
// whitespace ("Q1.", "Q:", "Q 12", "Q."). A bare word starting with q
// ("quality") is not a marker.
var questionMarker = regexp.MustCompile(`^[Qq](\d|[[:punct:]]|\s)`)

// answerMarker matches explicit answer-start prefixes, case-insensitive.
var answerMarker = regexp.MustCompile(`(?i)^(a:|a\.|answer:)`)

// QAParser splits document lines into ordered question/answer pairs.
type QAParser struct{}

// NewQAParser creates a new heuristic QA parser.
func NewQAParser() *QAParser {
	return &QAParser{}
}

// Parse walks the non-empty lines in order. A question-start line opens a new
// pair; answer-start lines and plain lines accumulate, space-joined, on the
// open question. A question that never collects answer text is dropped.
func (p *QAParser) Parse(lines []string) []entities.QAPair {
	var pairs []entities.QAPair
	var question string
	var answer []string

	flush := func() {
		if question != "" && len(answer) > 0 {
			pairs = append(pairs, entities.QAPair{
				Question: question,
				Answer:   strings.Join(answer, " "),
			})
		}
		question, answer = "", nil
	}

	for _, line := range lines {
		switch {
		case isQuestionStart(line):
			flush()
			question = line
		case isAnswerStart(line):
			if question != "" {
				answer = append(answer, line)
			}
			// Answer lines before any question have nothing to attach to.
		default:
			if question != "" {
				answer = append(answer, line)
			}
		}
	}
	flush()

	return pairs
}

// isQuestionStart reports whether a line opens a new question: it ends with a
// question mark or carries a Q prefix marker.
func isQuestionStart(line string) bool {
	return strings.HasSuffix(line, "?") || questionMarker.MatchString(line)
}

// isAnswerStart reports whether a line carries an explicit answer marker.
func isAnswerStart(line string) bool {
	return answerMarker.MatchString(line)
}

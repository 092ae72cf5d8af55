package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizoraa/internal/domain"
)

// ParsedQuiz is the object shape the generation prompt instructs the model to
// return. Title may be empty; Questions must contain at least one entry.
type ParsedQuiz struct {
	Title     string           `json:"title"`
	Questions []ParsedQuestion `json:"questions"`
}

// ParsedQuestion is one question entry from the model's output array.
type ParsedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	CorrectAnswer []string `json:"correct_answer"`
	Type          string   `json:"type"`
	MediaURL      string   `json:"media_url,omitempty"`
	Hint          string   `json:"hint,omitempty"`
	Points        int      `json:"points"`
	Difficulty    string   `json:"difficulty"`
}

// NormalizeModelOutput coerces raw model text into a ParsedQuiz. Models tend
// to wrap their JSON in Markdown fences or surround it with prose despite
// instructions, so the text is cleaned before parsing:
//  1. surrounding whitespace is trimmed
//  2. a leading ```json or ``` fence and a trailing ``` fence are stripped
//  3. the text is sliced from the first '{' to the last '}' when both exist
//
// Any parse or shape failure returns a GENERATION_PARSE_ERROR carrying the
// raw text for diagnostics. The caller does not retry.
func NormalizeModelOutput(raw string) (*ParsedQuiz, error) {
	cleanText := strings.TrimSpace(raw)

	if strings.HasPrefix(cleanText, "```json") {
		cleanText = cleanText[len("```json"):]
	} else if strings.HasPrefix(cleanText, "```") {
		cleanText = cleanText[len("```"):]
	}
	if strings.HasSuffix(cleanText, "```") {
		cleanText = cleanText[:len(cleanText)-len("```")]
	}
	cleanText = strings.TrimSpace(cleanText)

	firstBrace := strings.Index(cleanText, "{")
	lastBrace := strings.LastIndex(cleanText, "}")
	if firstBrace != -1 && lastBrace != -1 && lastBrace > firstBrace {
		cleanText = cleanText[firstBrace : lastBrace+1]
	}

	var quiz ParsedQuiz
	if err := json.Unmarshal([]byte(cleanText), &quiz); err != nil {
		return nil, domain.NewGenerationParseError(raw, fmt.Errorf("failed to parse model output as JSON: %w", err))
	}

	if len(quiz.Questions) == 0 {
		return nil, domain.NewGenerationParseError(raw, fmt.Errorf("model output contains no questions"))
	}

	return &quiz, nil
}

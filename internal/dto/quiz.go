package dto

import "time"

// GenerateQuizRequest is the inbound payload for AI quiz generation.
// @Description Request body for generating a quiz with AI
type GenerateQuizRequest struct {
	Prompt              string   `json:"prompt"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	CreatorID           string   `json:"creator_id"`
	Category            string   `json:"category"`
	Visibility          string   `json:"visibility"`
	Difficulty          string   `json:"difficulty"`
	TotalQuestions      int      `json:"total_questions"`
	QuestionTypes       []string `json:"question_types"`
	IncludeExplanations bool     `json:"include_explanations"`
	IncludeMemory       bool     `json:"include_memory"`
	CustomInstructions  string   `json:"custom_instructions"`
	Language            string   `json:"language"`
	EstimatedTime       int      `json:"estimated_time"`
}

// QuizResponse represents a generated quiz header in the API response
// @Description Generated quiz header
type QuizResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	CreatorID      string    `json:"creator_id"`
	Visibility     string    `json:"visibility"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	Status         string    `json:"status"`
	TotalQuestions int       `json:"total_questions"`
	EstimatedTime  int       `json:"estimated_time,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionResponse represents one generated question in the API response
type QuestionResponse struct {
	ID            string   `json:"id"`
	QuizID        string   `json:"quiz_id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer []string `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	MediaURL      string   `json:"media_url,omitempty"`
	Hint          string   `json:"hint,omitempty"`
	Points        int      `json:"points"`
	Difficulty    string   `json:"difficulty"`
	OrderIndex    int      `json:"order_index"`
}

// GenerateQuizResponse is returned on successful generation
// @Description Result of a successful generation run
type GenerateQuizResponse struct {
	QuizID    string             `json:"quiz_id"`
	Quiz      QuizResponse       `json:"quiz"`
	Questions []QuestionResponse `json:"questions"`
}

// QuizDetailResponse is a quiz header together with its questions
type QuizDetailResponse struct {
	Quiz      QuizResponse       `json:"quiz"`
	Questions []QuestionResponse `json:"questions"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

package service

import (
	"fmt"
	"strings"

	"quizoraa/internal/dto"
)

// BuildGenerationPrompt assembles the single instruction string sent to the
// generation model. It is a pure function of the resolved content, the
// enrichment block and the request parameters.
func BuildGenerationPrompt(content, enrichment string, req *dto.GenerateQuizRequest) string {
	var b strings.Builder

	b.WriteString("You are an expert quiz generator.\n")
	fmt.Fprintf(&b, "Generate a %s quiz in %s with %d questions based on the following content:\n\n",
		req.Difficulty, req.Language, req.TotalQuestions)
	fmt.Fprintf(&b, "%q\n\n", content)

	if enrichment != "" {
		fmt.Fprintf(&b, "Use the following summarized feedback to improve question quality:\n\n%s\n\n", enrichment)
	}

	fmt.Fprintf(&b, "Category: %s\n", req.Category)
	fmt.Fprintf(&b, "Question types: %s\n", strings.Join(req.QuestionTypes, ", "))
	includeExplanations := "No"
	if req.IncludeExplanations {
		includeExplanations = "Yes"
	}
	fmt.Fprintf(&b, "Include explanations: %s\n\n", includeExplanations)

	if req.CustomInstructions != "" {
		fmt.Fprintf(&b, "Instructions: %s\n\n", req.CustomInstructions)
	}

	b.WriteString(`Return result as JSON in this EXACT format - do not deviate:
{
  "title": "Quiz Title Here",
  "questions": [
    {
      "question": "Sample multiple choice question?",
      "options": ["option1", "option2", "option3", "option4"],
      "explanation": "Explanation text here",
      "correct_answer": ["option2"],
      "type": "mcq",
      "media_url": null,
      "hint": "Helpful hint here",
      "points": 1,
      "difficulty": "easy"
    },
    {
      "question": "Sample true/false question?",
      "options": ["True", "False"],
      "explanation": "Explanation text here",
      "correct_answer": ["True"],
      "type": "true_false",
      "media_url": null,
      "hint": "Helpful hint here",
      "points": 1,
      "difficulty": "easy"
    },
    {
      "question": "Sample open-ended question?",
      "explanation": "Explanation text here",
      "correct_answer": ["answer1", "answer2", "answer3"],
      "type": "open_ended",
      "media_url": null,
      "hint": "Helpful hint here",
      "points": 1,
      "difficulty": "easy"
    }
  ]
}

IMPORTANT:
`)
	fmt.Fprintf(&b, "- Generate exactly %d questions\n", req.TotalQuestions)
	fmt.Fprintf(&b, "- Use only the question types: %s\n", strings.Join(req.QuestionTypes, ", "))
	b.WriteString(`- Ensure valid JSON with no syntax errors
- Do not include any text outside the JSON
- For MCQ: include 4 options, correct_answer should be one of the options
- For true_false: options should be ["True", "False"], correct_answer should be ["True"] or ["False"]
- For open_ended: no options needed, correct_answer should be array of acceptable answers
`)

	return b.String()
}

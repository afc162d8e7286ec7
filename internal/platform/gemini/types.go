package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	QuizText string
}

// ResponseSchema represents the expected structure of the Gemini API response
type ResponseSchema struct {
	// Questions is the array of quiz questions generated from the source text
	Questions []QuestionSchema `json:"questions"`
}

// QuestionSchema represents a single quiz question in the API response
type QuestionSchema struct {
	// Question is the question text
	Question string `json:"question"`

	// Answers are the candidate answers; exactly one should be correct
	Answers []AnswerSchema `json:"answers"`
}

// AnswerSchema represents a candidate answer in the API response
type AnswerSchema struct {
	// Text is the answer text shown to the user
	Text string `json:"text"`

	// IsCorrect marks whether this is the correct answer
	IsCorrect bool `json:"is_correct"`
}

package dto

// Wire-format bodies for the study backend. Field names and json tags
// follow the backend contract exactly; do not rename.

// QuestionResponse is a single question inside a generated quiz.
type QuestionResponse struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

// QuizResponse is the payload of POST /quiz/generate.
type QuizResponse struct {
	ID        string             `json:"id"`
	Questions []QuestionResponse `json:"questions"`
}

// QuizSubmissionRequest is the body of POST /quiz/submit.
// Answers maps question IDs to the selected choice string; unanswered
// questions are absent, never empty-valued.
type QuizSubmissionRequest struct {
	QuizID  string            `json:"quiz_id"`
	Answers map[string]string `json:"answers"`
}

// ResultDetailResponse is one graded question in a quiz result.
type ResultDetailResponse struct {
	Question      string `json:"question"`
	YourAnswer    string `json:"your_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// QuizResultResponse is the payload of POST /quiz/submit.
type QuizResultResponse struct {
	Score   float64                `json:"score"`
	Details []ResultDetailResponse `json:"details"`
}

// PlanItemResponse is one review recommendation.
type PlanItemResponse struct {
	Topic      string  `json:"topic"`
	Accuracy   float64 `json:"accuracy"`
	NextReview string  `json:"next_review"`
}

// PlanResponse is the payload of GET /planner/recommend. Plan may be
// empty or absent; both mean "nothing planned yet", not an error.
type PlanResponse struct {
	Plan []PlanItemResponse `json:"plan"`
}

// FlashcardResponse is a single generated flashcard.
type FlashcardResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardsResponse is the payload of POST /generate_flashcards.
type FlashcardsResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// UploadResponse is the payload of POST /upload.
type UploadResponse struct {
	ChunksExtracted int `json:"chunks_extracted"`
}

// ChatRequest is the body of POST /chat/ask.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the payload of POST /chat/ask.
type ChatResponse struct {
	Answer string `json:"answer"`
}

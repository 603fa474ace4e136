package domain

// View models held by the client for the active session. Nothing here is
// persisted; every value is created from a backend payload and discarded
// when its controller resets.

// Question is a single multiple-choice question. Choice order is the
// backend's order and must never be re-sorted: scoring is ID-based and
// positional on the backend's record.
type Question struct {
	ID       string
	Question string
	Choices  []string
}

// Quiz is one generated quiz attempt.
type Quiz struct {
	ID        string
	Questions []Question
}

// HasQuestion reports whether id belongs to this quiz.
func (q *Quiz) HasQuestion(id string) bool {
	for _, question := range q.Questions {
		if question.ID == id {
			return true
		}
	}
	return false
}

// AnswerSet maps question IDs to the selected choice string. Unanswered
// questions are absent, never empty-valued.
type AnswerSet map[string]string

// Select records a choice for a question. Selecting again for the same
// question overwrites the prior choice (last write wins).
func (a AnswerSet) Select(questionID, choice string) {
	a[questionID] = choice
}

// Copy returns an independent copy of the answer set.
func (a AnswerSet) Copy() AnswerSet {
	out := make(AnswerSet, len(a))
	for id, choice := range a {
		out[id] = choice
	}
	return out
}

// ResultDetail is one graded question of a submitted quiz.
type ResultDetail struct {
	Question      string
	YourAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	Explanation   string
}

// QuizResult is the graded outcome of a submission. Score is 0-100 as
// computed by the backend; the client never recomputes it.
type QuizResult struct {
	Score   float64
	Details []ResultDetail
}

// PlanItem is a single topic-level review recommendation.
type PlanItem struct {
	Topic      string
	Accuracy   float64
	NextReview string
}

// Flashcard is one generated question/answer card.
type Flashcard struct {
	Question string
	Answer   string
}

// UploadReceipt reports how many note chunks the backend extracted.
type UploadReceipt struct {
	ChunksExtracted int
}

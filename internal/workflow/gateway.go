package workflow

import (
	"context"
	"io"

	"studymate/internal/domain"
)

// Gateway is the backend capability the controllers consume. The real
// implementation is gateway.Client; tests substitute a mock.
type Gateway interface {
	GenerateQuiz(ctx context.Context, numQuestions int) (*domain.Quiz, error)
	SubmitQuiz(ctx context.Context, quizID string, answers domain.AnswerSet) (*domain.QuizResult, error)
	FetchPlan(ctx context.Context) ([]domain.PlanItem, error)
	GenerateFlashcards(ctx context.Context) ([]domain.Flashcard, error)
	UploadNotes(ctx context.Context, fileName string, file io.Reader) (*domain.UploadReceipt, error)
	Ask(ctx context.Context, question string) (string, error)
}

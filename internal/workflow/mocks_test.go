package workflow

import (
	"context"
	"io"

	"studymate/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockGateway ---
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GenerateQuiz(ctx context.Context, numQuestions int) (*domain.Quiz, error) {
	args := m.Called(ctx, numQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockGateway) SubmitQuiz(ctx context.Context, quizID string, answers domain.AnswerSet) (*domain.QuizResult, error) {
	args := m.Called(ctx, quizID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizResult), args.Error(1)
}

func (m *MockGateway) FetchPlan(ctx context.Context) ([]domain.PlanItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanItem), args.Error(1)
}

func (m *MockGateway) GenerateFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockGateway) UploadNotes(ctx context.Context, fileName string, file io.Reader) (*domain.UploadReceipt, error) {
	args := m.Called(ctx, fileName, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadReceipt), args.Error(1)
}

func (m *MockGateway) Ask(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

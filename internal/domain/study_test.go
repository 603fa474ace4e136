package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerSet_SelectLastWriteWins(t *testing.T) {
	answers := make(AnswerSet)
	answers.Select("q1", "A")
	answers.Select("q2", "B")
	answers.Select("q1", "C")

	assert.Len(t, answers, 2)
	assert.Equal(t, "C", answers["q1"])
	assert.Equal(t, "B", answers["q2"])
}

func TestAnswerSet_CopyIsIndependent(t *testing.T) {
	answers := AnswerSet{"q1": "A"}
	copied := answers.Copy()
	copied.Select("q1", "B")
	copied.Select("q2", "C")

	assert.Equal(t, AnswerSet{"q1": "A"}, answers)
}

func TestQuiz_HasQuestion(t *testing.T) {
	quiz := &Quiz{ID: "quiz-1", Questions: []Question{{ID: "q1"}, {ID: "q2"}}}

	assert.True(t, quiz.HasQuestion("q1"))
	assert.True(t, quiz.HasQuestion("q2"))
	assert.False(t, quiz.HasQuestion("q3"))
	assert.False(t, quiz.HasQuestion(""))
}

func TestDomainError_Predicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("bad input")))
	assert.True(t, IsPrecondition(NewPreconditionError("missing upstream state", nil)))
	assert.True(t, IsBusy(NewBusyError("quiz generation")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("log in")))

	assert.False(t, IsValidation(NewBackendError("down", nil)))
	assert.False(t, IsPrecondition(errors.New("plain")))
	assert.False(t, IsBusy(nil))
}

func TestDomainError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBackendError("plan fetch request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

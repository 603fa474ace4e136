package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"studymate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadScreen_NoFileIsLocalValidation(t *testing.T) {
	gw := new(MockGateway)
	s := NewUploadScreen(gw)

	_, err := s.Upload(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	phase, _, _ := s.State()
	assert.Equal(t, PhaseIdle, phase)
	gw.AssertNotCalled(t, "UploadNotes", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadScreen_MissingFileIsLocalValidation(t *testing.T) {
	gw := new(MockGateway)
	s := NewUploadScreen(gw)

	_, err := s.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	gw.AssertNotCalled(t, "UploadNotes", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadScreen_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("some notes"), 0o600))

	gw := new(MockGateway)
	gw.On("UploadNotes", mock.Anything, "notes.pdf", mock.Anything).
		Return(&domain.UploadReceipt{ChunksExtracted: 12}, nil)

	s := NewUploadScreen(gw)
	receipt, err := s.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 12, receipt.ChunksExtracted)

	phase, held, _ := s.State()
	assert.Equal(t, PhaseSucceeded, phase)
	assert.Equal(t, receipt, held)
	gw.AssertExpectations(t)
}

func TestFlashcardScreen_FailureKeepsError(t *testing.T) {
	gw := new(MockGateway)
	gw.On("GenerateFlashcards", mock.Anything).
		Return(nil, domain.NewPreconditionError("flashcard generation rejected by backend", nil))

	s := NewFlashcardScreen(gw)
	_, err := s.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsPrecondition(err))

	phase, cards, _ := s.State()
	assert.Equal(t, PhaseFailed, phase)
	assert.Empty(t, cards)
}

func TestFlashcardScreen_SuccessReplacesPriorSet(t *testing.T) {
	gw := new(MockGateway)
	gw.On("GenerateFlashcards", mock.Anything).
		Return([]domain.Flashcard{{Question: "Q1", Answer: "A1"}}, nil).Once()
	gw.On("GenerateFlashcards", mock.Anything).
		Return([]domain.Flashcard{{Question: "Q2", Answer: "A2"}, {Question: "Q3", Answer: "A3"}}, nil).Once()

	s := NewFlashcardScreen(gw)
	first, err := s.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := s.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)

	_, held, _ := s.State()
	assert.Equal(t, second, held)
}

func TestChatScreen_EmptyQuestionIsIgnoredLocally(t *testing.T) {
	gw := new(MockGateway)
	s := NewChatScreen(gw)

	_, err := s.Ask(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	gw.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything)
}

func TestChatScreen_KeepsLatestAnswer(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Ask", mock.Anything, "what is a slice?").Return("a view over an array", nil).Once()
	gw.On("Ask", mock.Anything, "what is a map?").Return("a hash table", nil).Once()

	s := NewChatScreen(gw)
	answer, err := s.Ask(context.Background(), "what is a slice?")
	require.NoError(t, err)
	assert.Equal(t, "a view over an array", answer)

	answer, err = s.Ask(context.Background(), "what is a map?")
	require.NoError(t, err)
	assert.Equal(t, "a hash table", answer)

	_, held, _ := s.State()
	assert.Equal(t, "a hash table", held)
}

package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"studymate/internal/domain"
)

// The stateless screens are single request/response exchanges: one
// AsyncOperation each, no multi-step state. They share the same
// busy-guard and staleness discipline as the two workflow controllers.

// Messages surfaced by the stateless screens.
const (
	MsgSelectFile   = "Please select a notes file first!"
	MsgUploadFailed = "Upload failed. Please try again or check backend logs."
	MsgNeedNotes    = "Error generating flashcards. Upload notes first!"
	MsgChatFailed   = "Error fetching response. Try again!"
)

// UploadScreen uploads a notes file and reports the extracted chunk count.
type UploadScreen struct {
	gw Gateway
	op AsyncOperation[*domain.UploadReceipt]
}

func NewUploadScreen(gw Gateway) *UploadScreen {
	return &UploadScreen{gw: gw}
}

// Upload streams the file at path to the backend. A missing selection or
// unreadable file is a local validation error; no request is issued.
func (s *UploadScreen) Upload(ctx context.Context, path string) (*domain.UploadReceipt, error) {
	if strings.TrimSpace(path) == "" {
		return nil, domain.NewValidationError(MsgSelectFile)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewValidationError("could not read notes file: " + err.Error())
	}
	defer file.Close()

	runErr := s.op.Run(ctx, "notes upload", func(ctx context.Context) (*domain.UploadReceipt, error) {
		return s.gw.UploadNotes(ctx, filepath.Base(path), file)
	})
	if runErr != nil {
		return nil, runErr
	}
	_, receipt, _ := s.op.State()
	return receipt, nil
}

// State exposes the screen's operation state for rendering.
func (s *UploadScreen) State() (Phase, *domain.UploadReceipt, error) {
	return s.op.State()
}

func (s *UploadScreen) Close() { s.op.Close() }

// FlashcardScreen generates flashcards from the uploaded notes.
type FlashcardScreen struct {
	gw Gateway
	op AsyncOperation[[]domain.Flashcard]
}

func NewFlashcardScreen(gw Gateway) *FlashcardScreen {
	return &FlashcardScreen{gw: gw}
}

// Generate fetches a fresh set of flashcards, replacing any prior set.
func (s *FlashcardScreen) Generate(ctx context.Context) ([]domain.Flashcard, error) {
	err := s.op.Run(ctx, "flashcard generation", func(ctx context.Context) ([]domain.Flashcard, error) {
		return s.gw.GenerateFlashcards(ctx)
	})
	if err != nil {
		return nil, err
	}
	_, cards, _ := s.op.State()
	return cards, nil
}

func (s *FlashcardScreen) State() (Phase, []domain.Flashcard, error) {
	return s.op.State()
}

func (s *FlashcardScreen) Close() { s.op.Close() }

// ChatScreen asks the backend assistant a free-form question and keeps
// only the latest answer.
type ChatScreen struct {
	gw Gateway
	op AsyncOperation[string]
}

func NewChatScreen(gw Gateway) *ChatScreen {
	return &ChatScreen{gw: gw}
}

// Ask sends the question. Empty questions are ignored locally, exactly
// like an empty input box: no request, no state change.
func (s *ChatScreen) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", domain.NewValidationError("ask a question about your notes first")
	}
	err := s.op.Run(ctx, "chat", func(ctx context.Context) (string, error) {
		return s.gw.Ask(ctx, question)
	})
	if err != nil {
		return "", err
	}
	_, answer, _ := s.op.State()
	return answer, nil
}

func (s *ChatScreen) State() (Phase, string, error) {
	return s.op.State()
}

func (s *ChatScreen) Close() { s.op.Close() }

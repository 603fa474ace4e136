package workflow

import (
	"context"
	"sync"

	"studymate/internal/domain"
	"studymate/internal/logger"

	"go.uber.org/zap"
)

// QuizState is the lifecycle state of one quiz attempt.
type QuizState string

const (
	QuizStateIdle       QuizState = "idle"
	QuizStateLoading    QuizState = "loading"
	QuizStateInProgress QuizState = "in_progress"
	QuizStateSubmitting QuizState = "submitting"
	QuizStateCompleted  QuizState = "completed"
)

// User-facing messages surfaced by the quiz workflow.
const (
	MsgNeedFlashcards   = "Please generate flashcards first before taking a quiz."
	MsgAnswerAtLeastOne = "Please answer at least one question!"
	MsgSubmitFailed     = "Quiz submission failed! Your answers are preserved, try again."
)

// QuizWorkflow owns the quiz lifecycle: request a quiz, collect answers,
// submit, hold the graded result, allow retry. It starts from Idle on
// every construction; no state survives across instances.
//
// Lifecycle: Idle -> Loading -> InProgress -> Submitting -> Completed,
// and back to Idle only through Retry.
type QuizWorkflow struct {
	gw           Gateway
	numQuestions int

	generate AsyncOperation[*domain.Quiz]
	submit   AsyncOperation[*domain.QuizResult]

	mu      sync.Mutex
	answers domain.AnswerSet
	message string
}

// QuizSnapshot is an immutable view of the workflow for rendering. Quiz
// and Result are mutually exclusive: an in-progress view never carries a
// result and a completed view never carries the superseded quiz.
type QuizSnapshot struct {
	State   QuizState
	Quiz    *domain.Quiz
	Answers domain.AnswerSet
	Result  *domain.QuizResult
	Message string
}

// NewQuizWorkflow creates a quiz workflow in the Idle state.
func NewQuizWorkflow(gw Gateway, numQuestions int) *QuizWorkflow {
	if numQuestions <= 0 {
		numQuestions = 5
	}
	return &QuizWorkflow{
		gw:           gw,
		numQuestions: numQuestions,
		answers:      make(domain.AnswerSet),
	}
}

// State derives the lifecycle state from the two operation phases.
func (w *QuizWorkflow) State() QuizState {
	subPhase, result, _ := w.submit.State()
	genPhase, quiz, _ := w.generate.State()
	switch {
	case subPhase == PhasePending:
		return QuizStateSubmitting
	case subPhase == PhaseSucceeded && result != nil:
		return QuizStateCompleted
	case genPhase == PhasePending:
		return QuizStateLoading
	case genPhase == PhaseSucceeded && quiz != nil:
		return QuizStateInProgress
	}
	return QuizStateIdle
}

// StartQuiz requests a fresh quiz. Valid only from Idle or Completed.
// On success the workflow moves to InProgress with an empty answer set,
// discarding any prior result; on failure it stays where it was and
// surfaces the flashcards-first hint.
func (w *QuizWorkflow) StartQuiz(ctx context.Context) error {
	switch w.State() {
	case QuizStateIdle, QuizStateCompleted:
	case QuizStateLoading, QuizStateSubmitting:
		return domain.NewBusyError("quiz generation")
	default:
		return domain.NewValidationError("a quiz is already in progress; submit it or retry first")
	}

	err := w.generate.Run(ctx, "quiz generation", func(ctx context.Context) (*domain.Quiz, error) {
		return w.gw.GenerateQuiz(ctx, w.numQuestions)
	})
	if err != nil {
		if domain.IsBusy(err) {
			return err
		}
		logger.Get().Warn("quiz generation failed", zap.Error(err))
		w.setMessage(MsgNeedFlashcards)
		return err
	}

	// Fresh attempt: stale answers from a previous quiz must never leak
	// into the new one, and a prior result is discarded.
	w.submit.Reset()
	w.mu.Lock()
	w.answers = make(domain.AnswerSet)
	w.message = ""
	w.mu.Unlock()
	return nil
}

// SelectAnswer records the choice for a question of the current quiz.
// Last write wins; the state does not change. Valid only in InProgress.
func (w *QuizWorkflow) SelectAnswer(questionID, choice string) error {
	if w.State() != QuizStateInProgress {
		return domain.NewValidationError("no quiz is in progress")
	}
	_, quiz, _ := w.generate.State()
	if quiz == nil || !quiz.HasQuestion(questionID) {
		return domain.NewValidationError("question does not belong to the current quiz")
	}
	w.mu.Lock()
	w.answers.Select(questionID, choice)
	w.mu.Unlock()
	return nil
}

// SubmitQuiz sends the collected answers for grading. An empty answer
// set is rejected locally without any network call. On failure the quiz
// returns to InProgress with every answer preserved.
func (w *QuizWorkflow) SubmitQuiz(ctx context.Context) error {
	switch w.State() {
	case QuizStateInProgress:
	case QuizStateLoading, QuizStateSubmitting:
		return domain.NewBusyError("quiz submission")
	default:
		return domain.NewValidationError("no quiz is in progress")
	}

	_, quiz, _ := w.generate.State()
	if quiz == nil {
		return domain.NewValidationError("no quiz is in progress")
	}

	w.mu.Lock()
	if len(w.answers) == 0 {
		w.message = MsgAnswerAtLeastOne
		w.mu.Unlock()
		return domain.NewValidationError(MsgAnswerAtLeastOne)
	}
	answers := w.answers.Copy()
	w.mu.Unlock()

	err := w.submit.Run(ctx, "quiz submission", func(ctx context.Context) (*domain.QuizResult, error) {
		return w.gw.SubmitQuiz(ctx, quiz.ID, answers)
	})
	if err != nil {
		if domain.IsBusy(err) {
			return err
		}
		logger.Get().Warn("quiz submission failed",
			zap.String("quiz_id", quiz.ID),
			zap.Int("answered", len(answers)),
			zap.Error(err),
		)
		w.setMessage(MsgSubmitFailed)
		return err
	}
	w.setMessage("")
	return nil
}

// Retry clears the quiz, answers and result, returning to Idle. It does
// not fetch a new quiz: the user starts fresh explicitly. Valid only in
// Completed.
func (w *QuizWorkflow) Retry() error {
	if w.State() != QuizStateCompleted {
		return domain.NewValidationError("there is no completed quiz to retry")
	}
	w.generate.Reset()
	w.submit.Reset()
	w.mu.Lock()
	w.answers = make(domain.AnswerSet)
	w.message = ""
	w.mu.Unlock()
	return nil
}

// Close tears the workflow down. In-flight resolutions are discarded
// rather than applied to a dead controller.
func (w *QuizWorkflow) Close() {
	w.generate.Close()
	w.submit.Close()
}

// Snapshot returns a render-safe view of the workflow. The answer map is
// copied so callers cannot mutate controller state.
func (w *QuizWorkflow) Snapshot() QuizSnapshot {
	state := w.State()
	_, quiz, _ := w.generate.State()
	_, result, _ := w.submit.State()

	w.mu.Lock()
	answers := w.answers.Copy()
	message := w.message
	w.mu.Unlock()

	snap := QuizSnapshot{State: state, Message: message}
	switch state {
	case QuizStateCompleted:
		snap.Result = result
	case QuizStateInProgress, QuizStateSubmitting:
		snap.Quiz = quiz
		snap.Answers = answers
	}
	return snap
}

func (w *QuizWorkflow) setMessage(message string) {
	w.mu.Lock()
	w.message = message
	w.mu.Unlock()
}

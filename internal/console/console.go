package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"studymate/internal/domain"
	"studymate/internal/logger"
	"studymate/internal/session"
	"studymate/internal/workflow"

	"go.uber.org/zap"
)

// Console is the interactive front of the client: one long-lived process
// plays the role of one browser session. It parses a verb per line,
// enforces the login gate at the dispatch point, and renders controller
// snapshots as plain text.
type Console struct {
	in  io.Reader
	out io.Writer

	session    *session.Manager
	quiz       *workflow.QuizWorkflow
	plan       *workflow.PlanWorkflow
	upload     *workflow.UploadScreen
	flashcards *workflow.FlashcardScreen
	chat       *workflow.ChatScreen
}

func New(
	in io.Reader,
	out io.Writer,
	sess *session.Manager,
	quiz *workflow.QuizWorkflow,
	plan *workflow.PlanWorkflow,
	upload *workflow.UploadScreen,
	flashcards *workflow.FlashcardScreen,
	chat *workflow.ChatScreen,
) *Console {
	return &Console{
		in:         in,
		out:        out,
		session:    sess,
		quiz:       quiz,
		plan:       plan,
		upload:     upload,
		flashcards: flashcards,
		chat:       chat,
	}
}

// Run reads commands until EOF, "quit", or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "studymate — AI study assistant. Type 'help' for commands.")
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		verb, args := fields[0], fields[1:]
		if verb == "quit" || verb == "exit" {
			break
		}
		c.dispatch(ctx, verb, args)
	}

	c.teardown()
	return scanner.Err()
}

func (c *Console) dispatch(ctx context.Context, verb string, args []string) {
	switch verb {
	case "help":
		c.printHelp()
		return
	case "login":
		c.handleLogin(args)
		return
	}

	// Every other command sits behind the login gate.
	if err := c.session.Require(); err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}

	switch verb {
	case "logout":
		c.session.Logout()
		fmt.Fprintln(c.out, "Logged out.")
	case "upload":
		c.handleUpload(ctx, args)
	case "flashcards":
		c.handleFlashcards(ctx)
	case "quiz":
		c.renderQuiz()
	case "start":
		c.handleStart(ctx)
	case "answer":
		c.handleAnswer(args)
	case "submit":
		c.handleSubmit(ctx)
	case "retry":
		c.handleRetry()
	case "plan":
		c.handlePlan(ctx)
	case "ask":
		c.handleAsk(ctx, args)
	default:
		fmt.Fprintf(c.out, "Unknown command %q. Type 'help' for commands.\n", verb)
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Commands:
  login <email> <password>   open a session
  logout                     close the session
  upload <file>              upload study notes (PDF)
  flashcards                 generate flashcards from your notes
  start                      start a new quiz
  quiz                       show the current quiz or result
  answer <question> <choice> pick a choice, e.g. 'answer 2 3'
  submit                     submit your answers for grading
  retry                      discard the result and start fresh
  plan                       fetch your adaptive review plan
  ask <question...>          ask the study assistant
  quit                       exit
`)
}

func (c *Console) handleLogin(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: login <email> <password>")
		return
	}
	if err := c.session.Login(args[0], args[1]); err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}
	fmt.Fprintf(c.out, "Welcome, %s! Upload your notes to get started.\n", c.session.Email())
}

func (c *Console) handleUpload(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: upload <file>")
		return
	}
	fmt.Fprintln(c.out, "Uploading your notes...")
	receipt, err := c.upload.Upload(ctx, args[0])
	if err != nil {
		if domain.IsValidation(err) || domain.IsBusy(err) {
			fmt.Fprintln(c.out, err.Error())
		} else {
			fmt.Fprintln(c.out, workflow.MsgUploadFailed)
		}
		return
	}
	fmt.Fprintf(c.out, "Notes uploaded successfully! Extracted %d chunks.\n", receipt.ChunksExtracted)
}

func (c *Console) handleFlashcards(ctx context.Context) {
	fmt.Fprintln(c.out, "Generating flashcards...")
	cards, err := c.flashcards.Generate(ctx)
	if err != nil {
		if domain.IsBusy(err) {
			fmt.Fprintln(c.out, err.Error())
		} else {
			fmt.Fprintln(c.out, workflow.MsgNeedNotes)
		}
		return
	}
	if len(cards) == 0 {
		fmt.Fprintln(c.out, "No flashcards came back. Try uploading richer notes.")
		return
	}
	for i, card := range cards {
		fmt.Fprintf(c.out, "%2d. Q: %s\n    A: %s\n", i+1, card.Question, card.Answer)
	}
}

func (c *Console) handleStart(ctx context.Context) {
	fmt.Fprintln(c.out, "Generating quiz...")
	if err := c.quiz.StartQuiz(ctx); err != nil {
		snap := c.quiz.Snapshot()
		if snap.Message != "" {
			fmt.Fprintln(c.out, snap.Message)
		} else {
			fmt.Fprintln(c.out, err.Error())
		}
		return
	}
	c.renderQuiz()
}

func (c *Console) handleAnswer(args []string) {
	snap := c.quiz.Snapshot()
	if snap.Quiz == nil {
		fmt.Fprintln(c.out, "No quiz is in progress. Use 'start' first.")
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: answer <question> <choice>")
		return
	}
	qn, err1 := strconv.Atoi(args[0])
	cn, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || qn < 1 || qn > len(snap.Quiz.Questions) {
		fmt.Fprintln(c.out, "Usage: answer <question> <choice>")
		return
	}
	question := snap.Quiz.Questions[qn-1]
	if cn < 1 || cn > len(question.Choices) {
		fmt.Fprintf(c.out, "Question %d has choices 1-%d.\n", qn, len(question.Choices))
		return
	}
	if err := c.quiz.SelectAnswer(question.ID, question.Choices[cn-1]); err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}
	fmt.Fprintf(c.out, "Question %d -> %s\n", qn, question.Choices[cn-1])
}

func (c *Console) handleSubmit(ctx context.Context) {
	if err := c.quiz.SubmitQuiz(ctx); err != nil {
		snap := c.quiz.Snapshot()
		if snap.Message != "" {
			fmt.Fprintln(c.out, snap.Message)
		} else {
			fmt.Fprintln(c.out, err.Error())
		}
		return
	}
	c.renderQuiz()
}

func (c *Console) handleRetry() {
	if err := c.quiz.Retry(); err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}
	fmt.Fprintln(c.out, "Quiz cleared. Use 'start' when you are ready.")
}

func (c *Console) handlePlan(ctx context.Context) {
	fmt.Fprintln(c.out, "Fetching your review plan...")
	if err := c.plan.FetchPlan(ctx); err != nil {
		fmt.Fprintln(c.out, workflow.MsgNoQuizData)
		return
	}
	snap := c.plan.Snapshot()
	if len(snap.Plan) == 0 {
		fmt.Fprintln(c.out, "No plans yet — take a quiz to get started!")
		return
	}
	for _, item := range snap.Plan {
		fmt.Fprintf(c.out, "- %s (accuracy %.0f%%, next review %s)\n",
			item.Topic, item.Accuracy, item.NextReview)
	}
}

func (c *Console) handleAsk(ctx context.Context, args []string) {
	question := strings.TrimSpace(strings.Join(args, " "))
	answer, err := c.chat.Ask(ctx, question)
	if err != nil {
		if domain.IsValidation(err) || domain.IsBusy(err) {
			fmt.Fprintln(c.out, err.Error())
		} else {
			fmt.Fprintln(c.out, workflow.MsgChatFailed)
		}
		return
	}
	fmt.Fprintln(c.out, answer)
}

func (c *Console) renderQuiz() {
	snap := c.quiz.Snapshot()
	switch snap.State {
	case workflow.QuizStateIdle:
		fmt.Fprintln(c.out, "No quiz yet. Use 'start' to generate one.")
	case workflow.QuizStateLoading:
		fmt.Fprintln(c.out, "Generating quiz...")
	case workflow.QuizStateSubmitting:
		fmt.Fprintln(c.out, "Submitting answers...")
	case workflow.QuizStateInProgress:
		for i, q := range snap.Quiz.Questions {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, q.Question)
			for j, choice := range q.Choices {
				marker := " "
				if snap.Answers[q.ID] == choice {
					marker = "*"
				}
				fmt.Fprintf(c.out, "   %s %d) %s\n", marker, j+1, choice)
			}
		}
		fmt.Fprintf(c.out, "Answered %d of %d. Use 'answer <question> <choice>', then 'submit'.\n",
			len(snap.Answers), len(snap.Quiz.Questions))
	case workflow.QuizStateCompleted:
		fmt.Fprintf(c.out, "Your Score: %g%%\n", snap.Result.Score)
		for _, d := range snap.Result.Details {
			verdict := "correct"
			if !d.IsCorrect {
				verdict = "wrong"
			}
			yourAnswer := d.YourAnswer
			if yourAnswer == "" {
				yourAnswer = "None"
			}
			explanation := d.Explanation
			if explanation == "" {
				explanation = "No explanation available."
			}
			fmt.Fprintf(c.out, "[%s] %s\n  Your Answer: %s\n  Correct: %s\n  %s\n",
				verdict, d.Question, yourAnswer, d.CorrectAnswer, explanation)
		}
		fmt.Fprintln(c.out, "Use 'retry' to start fresh.")
	}
	if snap.Message != "" {
		fmt.Fprintln(c.out, snap.Message)
	}
}

func (c *Console) teardown() {
	c.quiz.Close()
	c.plan.Close()
	c.upload.Close()
	c.flashcards.Close()
	c.chat.Close()
	email := c.session.Email()
	c.session.Logout()
	logger.Get().Info("console session closed", zap.String("email", email))
	fmt.Fprintln(c.out, "Bye!")
}

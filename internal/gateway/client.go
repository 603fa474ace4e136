package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"studymate/internal/domain"
	"studymate/internal/dto"
	"studymate/internal/logger"
	"studymate/internal/util"

	"go.uber.org/zap"
)

// Client is the stateless HTTP boundary to the study backend. It issues
// one request per call and normalizes failures into domain error codes;
// it never retries, caches, or deduplicates. Deduplication of concurrent
// identical calls belongs to the workflow controllers.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GenerateQuiz requests a new quiz of numQuestions questions.
// POST /quiz/generate?num_questions=N
func (c *Client) GenerateQuiz(ctx context.Context, numQuestions int) (*domain.Quiz, error) {
	path := "/quiz/generate?num_questions=" + strconv.Itoa(numQuestions)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to build quiz generation request", err)
	}

	var payload dto.QuizResponse
	if err := c.doJSON(req, &payload, "quiz generation"); err != nil {
		return nil, err
	}

	quiz := &domain.Quiz{
		ID:        payload.ID,
		Questions: make([]domain.Question, 0, len(payload.Questions)),
	}
	// Question and choice order is the backend's order; keep it.
	for _, q := range payload.Questions {
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:       q.ID,
			Question: q.Question,
			Choices:  q.Choices,
		})
	}
	return quiz, nil
}

// SubmitQuiz sends the collected answers for grading.
// POST /quiz/submit
func (c *Client) SubmitQuiz(ctx context.Context, quizID string, answers domain.AnswerSet) (*domain.QuizResult, error) {
	body, err := json.Marshal(dto.QuizSubmissionRequest{
		QuizID:  quizID,
		Answers: answers,
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to encode quiz submission", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/quiz/submit", bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewInternalError("failed to build quiz submission request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload dto.QuizResultResponse
	if err := c.doJSON(req, &payload, "quiz submission"); err != nil {
		return nil, err
	}

	result := &domain.QuizResult{
		Score:   payload.Score,
		Details: make([]domain.ResultDetail, 0, len(payload.Details)),
	}
	for _, d := range payload.Details {
		result.Details = append(result.Details, domain.ResultDetail{
			Question:      d.Question,
			YourAnswer:    d.YourAnswer,
			CorrectAnswer: d.CorrectAnswer,
			IsCorrect:     d.IsCorrect,
			Explanation:   d.Explanation,
		})
	}
	return result, nil
}

// FetchPlan retrieves the adaptive review plan. An empty or absent plan
// field is a valid "nothing planned yet" payload, not an error.
// GET /planner/recommend
func (c *Client) FetchPlan(ctx context.Context) ([]domain.PlanItem, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/planner/recommend", nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to build plan request", err)
	}

	var payload dto.PlanResponse
	if err := c.doJSON(req, &payload, "plan fetch"); err != nil {
		return nil, err
	}

	plan := make([]domain.PlanItem, 0, len(payload.Plan))
	for _, p := range payload.Plan {
		plan = append(plan, domain.PlanItem{
			Topic:      p.Topic,
			Accuracy:   p.Accuracy,
			NextReview: p.NextReview,
		})
	}
	return plan, nil
}

// GenerateFlashcards asks the backend to build flashcards from the
// uploaded notes.
// POST /generate_flashcards
func (c *Client) GenerateFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/generate_flashcards", nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to build flashcard request", err)
	}

	var payload dto.FlashcardsResponse
	if err := c.doJSON(req, &payload, "flashcard generation"); err != nil {
		return nil, err
	}

	cards := make([]domain.Flashcard, 0, len(payload.Flashcards))
	for _, f := range payload.Flashcards {
		cards = append(cards, domain.Flashcard{
			Question: f.Question,
			Answer:   f.Answer,
		})
	}
	return cards, nil
}

// UploadNotes streams a notes file to the backend as a multipart form
// with the file under the "file" field.
// POST /upload
func (c *Client) UploadNotes(ctx context.Context, fileName string, file io.Reader) (*domain.UploadReceipt, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, domain.NewInternalError("failed to build upload form", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, domain.NewInternalError("failed to read notes file", err)
	}
	if err := writer.Close(); err != nil {
		return nil, domain.NewInternalError("failed to finalize upload form", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &buf)
	if err != nil {
		return nil, domain.NewInternalError("failed to build upload request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var payload dto.UploadResponse
	if err := c.doJSON(req, &payload, "notes upload"); err != nil {
		return nil, err
	}
	return &domain.UploadReceipt{ChunksExtracted: payload.ChunksExtracted}, nil
}

// Ask sends a free-form question to the chat assistant.
// POST /chat/ask
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(dto.ChatRequest{Question: question})
	if err != nil {
		return "", domain.NewInternalError("failed to encode chat question", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/chat/ask", bytes.NewReader(body))
	if err != nil {
		return "", domain.NewInternalError("failed to build chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload dto.ChatResponse
	if err := c.doJSON(req, &payload, "chat"); err != nil {
		return "", err
	}
	return payload.Answer, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", util.NewULID())
	return req, nil
}

// doJSON executes the request and decodes a 2xx body into out. Failures
// are normalized: 4xx means the backend refused for a missing
// precondition, everything else is a transport-class error.
func (c *Client) doJSON(req *http.Request, out any, op string) error {
	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		logger.Get().Warn("backend request failed",
			zap.String("operation", op),
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return domain.NewBackendError(op+" request failed", err)
	}
	defer res.Body.Close()

	logger.Get().Debug("backend response",
		zap.String("operation", op),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	if res.StatusCode/100 != 2 {
		statusErr := fmt.Errorf("%s: %s", op, res.Status)
		if res.StatusCode >= 400 && res.StatusCode < 500 {
			return domain.NewPreconditionError(op+" rejected by backend", statusErr)
		}
		return domain.NewBackendError(op+" failed", statusErr)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return domain.NewBackendError(op+" returned an unreadable payload", err)
	}
	return nil
}

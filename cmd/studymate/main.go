package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studymate/internal/config"
	"studymate/internal/console"
	"studymate/internal/gateway"
	"studymate/internal/logger"
	"studymate/internal/session"
	"studymate/internal/workflow"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var backendURL string

	rootCmd := &cobra.Command{
		Use:   "studymate",
		Short: "Interactive client for the AI study assistant backend",
		Long: "studymate talks to an AI study assistant backend: upload notes, " +
			"generate flashcards, take quizzes, review your adaptive study plan, " +
			"and ask free-form questions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(backendURL)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&backendURL, "backend", "", "backend base URL (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(backendURL string) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	appLogger.Info("starting studymate",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Int("num_questions", cfg.Quiz.NumQuestions),
	)

	// Build the gateway and the session gate
	gw, err := gateway.NewClient(gateway.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		appLogger.Fatal("Failed to create backend gateway", zap.Error(err))
	}
	sess, err := session.NewManager(cfg.Session.TTL)
	if err != nil {
		appLogger.Fatal("Failed to create session manager", zap.Error(err))
	}

	// Controllers own their state for the lifetime of this process; a
	// new run starts from the initial state, like a fresh page mount.
	quiz := workflow.NewQuizWorkflow(gw, cfg.Quiz.NumQuestions)
	plan := workflow.NewPlanWorkflow(gw)
	upload := workflow.NewUploadScreen(gw)
	flashcards := workflow.NewFlashcardScreen(gw)
	chat := workflow.NewChatScreen(gw)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := console.New(os.Stdin, os.Stdout, sess, quiz, plan, upload, flashcards, chat)
	return ui.Run(ctx)
}

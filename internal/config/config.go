package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Backend BackendConfig
	Quiz    QuizConfig
	Session SessionConfig
	Logger  LoggerConfig
}

type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type QuizConfig struct {
	NumQuestions int `yaml:"num_questions"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// LoadConfig reads config.yaml (if present) and applies environment
// overrides. A missing config file is not an error: every key has a
// usable default.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	viper.SetDefault("backend.timeout", 30)
	viper.SetDefault("quiz.num_questions", 5)
	viper.SetDefault("session.ttl", 60)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Backend: BackendConfig{
			BaseURL: viper.GetString("backend.base_url"),
			Timeout: viper.GetDuration("backend.timeout") * time.Second,
		},
		Quiz: QuizConfig{
			NumQuestions: viper.GetInt("quiz.num_questions"),
		},
		Session: SessionConfig{
			TTL: viper.GetDuration("session.ttl") * time.Minute,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if baseURL := os.Getenv("BACKEND_URL"); baseURL != "" {
		config.Backend.BaseURL = baseURL
	}
	if timeout := os.Getenv("BACKEND_TIMEOUT"); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
		}
		config.Backend.Timeout = time.Duration(seconds) * time.Second
	}
	if numQuestions := os.Getenv("QUIZ_NUM_QUESTIONS"); numQuestions != "" {
		n, err := strconv.Atoi(numQuestions)
		if err != nil {
			return nil, fmt.Errorf("invalid QUIZ_NUM_QUESTIONS: %w", err)
		}
		config.Quiz.NumQuestions = n
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}

// Package tutor asks a language model to explain a drill item the learner
// failed.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/sabi/internal/llm"
)

// Input describes the failed item.
type Input struct {
	LessonTitle   string
	Mode          string
	Prompt        string
	CorrectAnswer string
	WrongAnswers  []string
}

// Explanation is the tutor's answer.
type Explanation struct {
	Explanation string `json:"explanation"`
	MemoryTip   string `json:"memory_tip"`
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 300, Temperature: 0.4}
}

// Service generates explanations. A nil *Service is valid and reports
// ErrUnavailable.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// ErrUnavailable is returned when no provider is configured.
var ErrUnavailable = errors.New("tutor: no LLM provider configured")

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Available reports whether Explain can reach a provider.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// Explain returns a short explanation and a memory tip for in.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	if in.CorrectAnswer == "" {
		return nil, fmt.Errorf("tutor: item has no correct answer")
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeExplain), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMessage(in)}},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	out.Explanation = strings.TrimSpace(out.Explanation)
	out.MemoryTip = strings.TrimSpace(out.MemoryTip)
	return &out, nil
}

// Ping sends a minimal request to check provider credentials.
func (s *Service) Ping(ctx context.Context) error {
	if !s.Available() {
		return ErrUnavailable
	}
	_, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposePing), llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: `Reply with {"explanation":"ok","memory_tip":"ok"}`}},
		Schema:    ExplanationSchema,
		MaxTokens: 32,
	})
	return err
}

package tutor

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sabi/internal/llm"
)

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"  Salam means hello. ","memory_tip":"Salam sounds like salaam, peace."}`),
	})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Explain(t.Context(), Input{
		LessonTitle:   "Greetings",
		Mode:          "multiple-choice",
		Prompt:        "hello.png",
		CorrectAnswer: "Salam",
		WrongAnswers:  []string{"Sag ol"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Salam means hello.", got.Explanation)
	assert.NotEmpty(t, got.MemoryTip)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	req := calls[0]
	assert.Equal(t, ExplanationSchema, req.Schema)
	assert.Equal(t, DefaultConfig().MaxTokens, req.MaxTokens)
	msg := req.Messages[0].Content
	for _, want := range []string{"Lesson: Greetings", "Correct answer: Salam", "- Sag ol"} {
		assert.True(t, strings.Contains(msg, want), "prompt missing %q", want)
	}
}

func TestExplain_InvalidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"explanation":"x"}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(t.Context(), Input{Prompt: "p", CorrectAnswer: "a"})
	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "got %v", err)
}

func TestExplain_Unavailable(t *testing.T) {
	var svc *Service
	assert.False(t, svc.Available())
	_, err := svc.Explain(t.Context(), Input{CorrectAnswer: "a"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, NewService(nil, DefaultConfig()).Ping(t.Context()), ErrUnavailable)
}

func TestExplain_RequiresAnswer(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())
	_, err := svc.Explain(t.Context(), Input{Prompt: "p"})
	assert.Error(t, err)
	assert.Empty(t, svc.provider.(*llm.MockProvider).Calls())
}

func TestUserMessage_NoWrongAnswers(t *testing.T) {
	msg := userMessage(Input{Mode: "typing", Prompt: "Thank you", CorrectAnswer: "Sag ol"})
	assert.Contains(t, msg, "None recorded")
	assert.NotContains(t, msg, "Lesson:")
}

func TestPing(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"explanation":"ok","memory_tip":"ok"}`)})
	require.NoError(t, NewService(mock, DefaultConfig()).Ping(t.Context()))
}

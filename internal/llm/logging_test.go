package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/sabi/internal/store"
)

type recordingEvents struct {
	store.EventRepo
	got  []store.LLMRequestEventData
	fail bool
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	if r.fail {
		return errors.New("disk full")
	}
	r.got = append(r.got, d)
	return nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"explanation":"hi"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, ProviderMock, events)

	ctx := WithPurpose(context.Background(), PurposeExplain)
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "why?"}},
		Schema:   explainSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.got))
	}
	ev := events.got[0]
	if ev.Provider != ProviderMock || ev.Model != "mock" || ev.Purpose != PurposeExplain {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 7 {
		t.Fatalf("unexpected usage: %+v", ev)
	}
	for _, want := range []string{"[system]", "[user]\nwhy?", "[schema: test-explain]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Fatalf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
	if ev.ResponseBody != `{"explanation":"hi"}` {
		t.Fatalf("unexpected response body %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	events := &recordingEvents{}
	p := WithLogging(NewMockProvider(down()), ProviderMock, events)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	ev := events.got[0]
	if ev.Success || ev.ErrorMessage == "" || ev.Purpose != "unknown" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestLogging_JournalFailureIgnored(t *testing.T) {
	events := &recordingEvents{fail: true}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), ProviderMock, events)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("journal failure leaked: %v", err)
	}
}

package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"nil schema accepts anything", nil, `not json`, false},
		{"valid", explainSchema, `{"explanation":"hi"}`, false},
		{"missing required", explainSchema, `{}`, true},
		{"wrong type", explainSchema, `{"explanation":3}`, true},
		{"extra property", explainSchema, `{"explanation":"hi","x":1}`, true},
		{"not json", explainSchema, `{"explanation":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Fatalf("content not preserved: %s", inv.Content)
				}
			}
		})
	}
}

func TestValidateResponse_BadSchema(t *testing.T) {
	bad := &Schema{Name: "test-bad", Definition: map[string]any{"type": 12}}
	if err := validateResponse(bad, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for uncompilable schema")
	}
}

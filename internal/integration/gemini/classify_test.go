package gemini

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"api 503", genai.APIError{Code: 503, Status: "UNAVAILABLE"}, true},
		{"api 429", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, true},
		{"api 400", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, false},
		{"wrapped api error", fmt.Errorf("generate: %w", genai.APIError{Code: 503}), true},
		{"overloaded text", errors.New("the model is overloaded, try again later"), true},
		{"unavailable text", errors.New("rpc error: UNAVAILABLE"), true},
		{"plain failure", errors.New("invalid request payload"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

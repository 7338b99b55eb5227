package gemini

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// transientSignatures are substrings that mark capacity and quota
// failures worth retrying when no structured code is available.
var transientSignatures = []string{
	"503",
	"429",
	"UNAVAILABLE",
	"RESOURCE_EXHAUSTED",
	"overloaded",
}

// isTransient reports whether err is a capacity or quota failure that
// a short backoff can outwait. Everything else surfaces immediately.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusServiceUnavailable || apiErr.Code == http.StatusTooManyRequests
	}

	msg := err.Error()
	for _, sig := range transientSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

package transport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&NoAuth{}).Apply(req)
	assert.Empty(t, req.Header)
}

func TestTokenAuth(t *testing.T) {
	tests := []struct {
		name   string
		auth   *TokenAuth
		expect string
	}{
		{"hosting api scheme", &TokenAuth{Scheme: "token", Token: "abc"}, "token abc"},
		{"default bearer", &TokenAuth{Token: "abc"}, "Bearer abc"},
		{"empty token sends nothing", &TokenAuth{Scheme: "token"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{Header: make(http.Header)}
			tt.auth.Apply(req)
			assert.Equal(t, tt.expect, req.Header.Get("Authorization"))
		})
	}
}

func TestHeaderAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&HeaderAuth{Header: "X-Api-Key", Value: "k"}).Apply(req)
	assert.Equal(t, "k", req.Header.Get("X-Api-Key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

// Package llm is the client for the external chat-completion service.
// Everything analytical in this system is a prompt sent through here.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Request is one chat-completion exchange. ImageData, when set, is attached
// to the prompt as a base64 data URI.
type Request struct {
	Prompt      string
	ImageData   []byte
	ImageMIME   string
	Temperature float64
	MaxTokens   int
}

// Completer performs one chat-style completion call and returns the model's
// free-text reply. Implementations must classify failures as TransientError
// or FatalError so callers can decide what is worth retrying.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// TransientError marks a failure worth retrying: rate limiting, upstream
// overload, or a dropped connection.
type TransientError struct {
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transient model failure (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transient model failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError marks a failure where retrying is pointless: bad credential,
// malformed request, or anything else the server rejects deterministically.
type FatalError struct {
	Status int
	Body   string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal model failure (status %d): %s", e.Status, e.Body)
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

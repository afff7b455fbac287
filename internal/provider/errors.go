// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind classifies a FetchError.
type Kind int

const (
	// KindUpstream is a non-2xx answer from the provider. Status is verbatim.
	KindUpstream Kind = iota
	// KindMalformed is a 2xx answer whose body could not be decoded.
	KindMalformed
	// KindUnknown is anything else: transport failures, cancellation, bugs.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindUpstream:
		return "upstream"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchError is the only error type a fetch operation returns. The message
// names the link but never the underlying cause; use errors.Unwrap to log it.
type FetchError struct {
	Kind   Kind
	Status int
	Link   string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindUnknown {
		return "Unknown error in " + e.Link
	}
	return "Invalid response in " + e.Link
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Upstream builds a KindUpstream error carrying the provider's status code.
func Upstream(status int, link string) *FetchError {
	return &FetchError{Kind: KindUpstream, Status: status, Link: link}
}

// Malformed builds a KindMalformed error. Status is always 400.
func Malformed(link string, err error) *FetchError {
	return &FetchError{Kind: KindMalformed, Status: http.StatusBadRequest, Link: link, Err: err}
}

// Unknown builds a KindUnknown error. Status is always 500.
func Unknown(link string, err error) *FetchError {
	return &FetchError{Kind: KindUnknown, Status: http.StatusInternalServerError, Link: link, Err: err}
}

// Classify converts an arbitrary failure on link into a FetchError. Errors
// that already are FetchErrors pass through untouched, JSON decoding failures
// become KindMalformed and everything else KindUnknown.
func Classify(link string, err error) *FetchError {
	if err == nil {
		return nil
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, ErrUnexpectedShape) {
		return Malformed(link, err)
	}

	return Unknown(link, err)
}

// Status maps err onto the HTTP status and reason a caller should surface.
// A nil error is 200. Errors that are not FetchErrors are reported as an
// unknown failure without leaking their text.
func Status(err error) (int, string) {
	if err == nil {
		return http.StatusOK, http.StatusText(http.StatusOK)
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Status, fe.Error()
	}

	return http.StatusInternalServerError, "Unknown error"
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindUpstream && fe.Status == http.StatusNotFound
}

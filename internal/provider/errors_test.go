// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		reason string
	}{
		{"nil", nil, 200, "OK"},
		{"upstream 404", Upstream(404, "repos/a/b"), 404, "Invalid response in repos/a/b"},
		{"upstream 403", Upstream(403, "user"), 403, "Invalid response in user"},
		{"malformed", Malformed("user", errors.New("bad json")), 400, "Invalid response in user"},
		{"unknown", Unknown("user", errors.New("dial tcp: refused")), 500, "Unknown error in user"},
		{"wrapped", fmt.Errorf("listing: %w", Upstream(502, "x")), 502, "Invalid response in x"},
		{"foreign", errors.New("boom"), 500, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, reason := Status(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestFetchError_HidesDetail(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:443: connection refused")
	err := Unknown("user", cause)

	assert.NotContains(t, err.Error(), "refused")
	assert.ErrorIs(t, err, cause)
}

func TestClassify(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{}

	assert.Nil(t, Classify("l", nil))
	assert.Equal(t, KindMalformed, Classify("l", syntaxErr).Kind)
	assert.Equal(t, KindMalformed, Classify("l", fmt.Errorf("x: %w", ErrUnexpectedShape)).Kind)
	assert.Equal(t, KindUnknown, Classify("l", context.Canceled).Kind)

	up := Upstream(404, "l")
	assert.Same(t, up, Classify("other", up))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(Upstream(404, "l")))
	assert.False(t, IsNotFound(Upstream(500, "l")))
	assert.False(t, IsNotFound(Malformed("l", nil)))
	assert.False(t, IsNotFound(nil))
}

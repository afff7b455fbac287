// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPRLink(t *testing.T) {
	tests := []struct {
		id      string
		want    string
		wantErr bool
	}{
		{"octo/hello/7", "repos/octo/hello/pulls/7", false},
		{" octo/hello/7 ", "repos/octo/hello/pulls/7", false},
		{"https://api.github.com/repos/octo/hello/pulls/7", "https://api.github.com/repos/octo/hello/pulls/7", false},
		{"https://api.github.com/repos/octo/hello/pulls/7/", "https://api.github.com/repos/octo/hello/pulls/7", false},
		{"https://github.com/octo/hello/pull/7", "repos/octo/hello/pulls/7", false},
		{"https://github.com/octo/hello/issues/7", "", true},
		{"octo/hello", "", true},
		{"octo/hello/x", "", true},
		{"octo/hello/0", "", true},
		{"/hello/7", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := PRLink(tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPRID)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "a/b%20c/d%23e.ipynb", escapePath("a/b c/d#e.ipynb"))
}

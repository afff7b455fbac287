// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		p, err := DecodePage([]byte(`{"login":"octocat"}`))
		require.NoError(t, err)
		assert.True(t, p.IsSingle())
		assert.Equal(t, []Mapping{{"login": "octocat"}}, p.Sequence())
	})

	t.Run("list", func(t *testing.T) {
		p, err := DecodePage([]byte(` [{"a":1},{"b":2}] `))
		require.NoError(t, err)
		assert.False(t, p.IsSingle())
		assert.Equal(t, 2, p.Len())
		assert.Equal(t, []Mapping{{"a": float64(1)}, {"b": float64(2)}}, p.Sequence())
	})

	t.Run("empty list", func(t *testing.T) {
		p, err := DecodePage([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, p.Sequence())
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := DecodePage([]byte(`{"a":`))
		require.Error(t, err)
		assert.Equal(t, KindMalformed, Classify("l", err).Kind)
	})

	tests := map[string]string{
		"empty body":      "",
		"scalar":          `"abc"`,
		"list of scalars": `[1,2]`,
		"list with null":  `[{"a":1},null]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePage([]byte(body))
			assert.ErrorIs(t, err, ErrUnexpectedShape)
		})
	}
}

func TestPage_SequenceIsACopy(t *testing.T) {
	p := Many([]Mapping{{"a": 1}})
	seq := p.Sequence()
	seq[0] = Mapping{"b": 2}
	assert.Equal(t, Mapping{"a": 1}, p.Sequence()[0])
}

func TestPage_ZeroValue(t *testing.T) {
	var p Page
	assert.False(t, p.IsSingle())
	assert.Empty(t, p.Sequence())

	_, ok := p.Object()
	assert.False(t, ok)
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points PRCTL_CFG_FILE at a testdata file, resets the global
// Config and loads it under the given namespace.
func withConfig(t *testing.T, testFile string, namespace string, fn func(t *testing.T)) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testFile))
	require.NoError(t, err)
	t.Setenv("PRCTL_CFG_FILE", absPath)

	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, err = Load(namespace)
	require.NoError(t, err)
	fn(t)
}

func TestLoad(t *testing.T) {
	withConfig(t, "mixed-types.yaml", "", func(t *testing.T) {
		assert.NotEmpty(t, Config.Source)
		assert.Equal(t, "prctl", Config.Data["name"])
		assert.Equal(t, 1, Config.Data["version"])
		assert.Equal(t, true, Config.Data["enabled"])
		assert.Equal(t, 30.5, Config.Data["timeout"])
		assert.Len(t, Config.Data["tags"], 2)
	})
}

func TestLoad_EmptyFile(t *testing.T) {
	withConfig(t, "empty.yaml", "", func(t *testing.T) {
		assert.NotEmpty(t, Config.Source)
		assert.Empty(t, Config.Data)
	})
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("PRCTL_CFG_FILE", "/nonexistent/path/prctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_PRCTL_CFG_FILE_IsDirectory(t *testing.T) {
	t.Setenv("PRCTL_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		namespace    string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "global key", key: "user", want: "octocat"},
		{name: "namespaced key wins", namespace: "prs", key: "user", want: "hubot"},
		{name: "namespace falls back to global", namespace: "files", key: "user", want: "octocat"},
		{name: "explicit dotted key", key: "prs.filter_by", want: "assigned"},
		{name: "missing with default", key: "missing", defaultValue: []string{"fallback"}, want: "fallback"},
		{name: "missing without default", key: "missing", wantErr: true},
		{name: "not a string", key: "page_size", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, "namespaced.yaml", tt.namespace, func(t *testing.T) {
				got, err := GetString(tt.key, tt.defaultValue...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestGetString_NotFoundIsSentinel(t *testing.T) {
	withConfig(t, "simple.yaml", "", func(t *testing.T) {
		_, err := GetString("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetInt(t *testing.T) {
	withConfig(t, "mixed-types.yaml", "", func(t *testing.T) {
		v, err := GetInt("version")
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		v, err = GetInt("timeout")
		require.NoError(t, err)
		assert.Equal(t, 30, v)

		v, err = GetInt("missing", 60)
		require.NoError(t, err)
		assert.Equal(t, 60, v)

		_, err = GetInt("name")
		assert.Error(t, err)
	})
}

func TestGetBool(t *testing.T) {
	withConfig(t, "namespaced.yaml", "comments", func(t *testing.T) {
		v, err := GetBool("threaded")
		require.NoError(t, err)
		assert.True(t, v)

		v, err = GetBool("missing", false)
		require.NoError(t, err)
		assert.False(t, v)

		_, err = GetBool("user")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "namespaced.yaml", "", func(t *testing.T) {
		v, err := GetStringSlice("prs.@mine")
		require.NoError(t, err)
		assert.Equal(t, []string{"--filter-by created", "--output json"}, v)
	})

	withConfig(t, "mixed-types.yaml", "", func(t *testing.T) {
		_, err := GetStringSlice("mixed")
		assert.Error(t, err)

		_, err = GetStringSlice("name")
		assert.Error(t, err)

		v, err := GetStringSlice("missing", []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, v)
	})
}

func TestLazyLoad(t *testing.T) {
	absPath, err := filepath.Abs(filepath.Join("testdata", "simple.yaml"))
	require.NoError(t, err)
	t.Setenv("PRCTL_CFG_FILE", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	got, err := GetString("api_url")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com", got)
	assert.Equal(t, absPath, Config.Source)
}

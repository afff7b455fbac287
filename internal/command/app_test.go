// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prctl/prctl/internal/differ"
	"github.com/prctl/prctl/internal/github"
)

// fakeAPI serves pull request o/r#7, which changes nb.ipynb, extra.ipynb
// and README.md.
type fakeAPI struct {
	srv *httptest.Server

	mu      sync.Mutex
	queries []string
	posted  []map[string]any
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	base, err := os.ReadFile(filepath.Join("testdata", "base.ipynb"))
	require.NoError(t, err)
	head, err := os.ReadFile(filepath.Join("testdata", "head.ipynb"))
	require.NoError(t, err)

	f := &fakeAPI{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"octocat"}`)
	})
	mux.HandleFunc("GET /search/issues", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.queries = append(f.queries, r.URL.Query().Get("q"))
		f.mu.Unlock()
		fmt.Fprintf(w, `{"items":[
			{"id":2,"title":"Zap cells","body":"","html_url":"h2","updated_at":"2026-02-01T00:00:00Z","pull_request":{"url":"%[1]s/repos/o/r/pulls/8"}},
			{"id":1,"title":"Add plot","body":"","html_url":"h1","updated_at":"2026-01-01T00:00:00Z","pull_request":{"url":"%[1]s/repos/o/r/pulls/7"}}
		]}`, f.srv.URL)
	})
	mux.HandleFunc("GET /repos/o/r/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		repo := f.srv.URL + "/repos/o/r"
		fmt.Fprintf(w, `{"base":{"sha":"b1","repo":{"url":%q}},"head":{"sha":"h1234567890","repo":{"url":%q}}}`, repo, repo)
	})
	mux.HandleFunc("GET /repos/o/r/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"filename":"nb.ipynb","status":"modified","additions":5,"deletions":2},
			{"filename":"extra.ipynb","status":"added","additions":9,"deletions":0},
			{"filename":"README.md","status":"modified","additions":1,"deletions":1}
		]`)
	})
	mux.HandleFunc("GET /repos/o/r/contents/{path...}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"download_url":%q}`, f.srv.URL+"/raw/"+r.URL.Query().Get("ref")+"/"+r.PathValue("path"))
	})
	mux.HandleFunc("GET /raw/{ref}/{path...}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("ref") == "b1" {
			_, _ = w.Write(base)
			return
		}
		_, _ = w.Write(head)
	})
	mux.HandleFunc("GET /repos/o/r/pulls/7/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"path":"nb.ipynb","position":3,"body":"rows changed?","updated_at":"t1","user":{"login":"hubot","avatar_url":"p"}},
			{"id":2,"path":"nb.ipynb","position":3,"body":"new data","updated_at":"t2","in_reply_to_id":1,"user":{"login":"octocat","avatar_url":"p"}},
			{"id":3,"path":"README.md","position":1,"body":"typo","updated_at":"t3","user":{"login":"hubot","avatar_url":"p"}}
		]`)
	})
	mux.HandleFunc("POST /repos/o/r/pulls/7/comments", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		f.posted = append(f.posted, in)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":50,"path":"nb.ipynb","position":3,"body":%q,"updated_at":"t9","user":{"login":"octocat","avatar_url":"p"}}`, in["body"])
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// run executes prctl with args against the fake API and returns stdout.
func (f *fakeAPI) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PRCTL_CFG_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	full := append([]string{"prctl"}, args...)
	if f != nil && len(args) > 0 && args[0] != "nbdiff" && args[0] != "completion" {
		full = append(full, "--token", "secret", "--api-url", f.srv.URL)
	}

	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	err = app.Run(context.Background(), full)
	return out.String(), err
}

func TestUser(t *testing.T) {
	f := newFakeAPI(t)
	out, err := f.run(t, "user", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"username":"octocat"}]`, out)
}

func TestPRs(t *testing.T) {
	f := newFakeAPI(t)

	out, err := f.run(t, "prs", "--filter-by", "assigned", "--user", "hubot",
		"--filter", "_repo=o/r,title@Add", "--attrs", "internal_id:iid", "--output", "json")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Add plot", rows[0]["title"])
	assert.Equal(t, float64(1), rows[0]["iid"])

	require.Len(t, f.queries, 1)
	assert.Equal(t, " state:open type:pr assignee:hubot repo:o/r", f.queries[0])
}

func TestPRs_DefaultsToCurrentUserAndSorts(t *testing.T) {
	f := newFakeAPI(t)

	out, err := f.run(t, "prs", "--sort", "updated_at", "--attrs", "!id")
	require.NoError(t, err)
	assert.Equal(t, " state:open type:pr author:octocat", f.queries[0])
	assert.Less(t, strings.Index(out, "Add plot"), strings.Index(out, "Zap cells"))
	assert.NotContains(t, out, "/pulls/")
}

func TestPRs_InvalidFilterBy(t *testing.T) {
	f := newFakeAPI(t)
	_, err := f.run(t, "prs", "--filter-by", "reviewed")
	assert.ErrorContains(t, err, github.ErrInvalidFilter.Error())
	assert.Empty(t, f.queries)
}

func TestFiles(t *testing.T) {
	f := newFakeAPI(t)

	out, err := f.run(t, "files", "o/r/7", "--titles", "--filter", `name/\.ipynb$`)
	require.NoError(t, err)
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "nb.ipynb")
	assert.Contains(t, out, "extra.ipynb")
	assert.NotContains(t, out, "README.md")
}

func TestFiles_Schema(t *testing.T) {
	f := newFakeAPI(t)
	out, err := f.run(t, "files", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "additions")
	assert.Contains(t, out, "status")
}

func TestFiles_BadPR(t *testing.T) {
	f := newFakeAPI(t)

	_, err := f.run(t, "files")
	assert.ErrorIs(t, err, ErrMissingPR)

	_, err = f.run(t, "files", "not-a-pr")
	assert.ErrorIs(t, err, github.ErrInvalidPRID)

	_, err = f.run(t, "files", "o/r/404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pull request o/r/404 not found (404)")
}

func TestContent(t *testing.T) {
	f := newFakeAPI(t)

	out, err := f.run(t, "content", "o/r/7", "nb.ipynb", "--side", "base")
	require.NoError(t, err)
	assert.Contains(t, out, `"rows: 10\n"`)

	out, err = f.run(t, "content", "o/r/7", "nb.ipynb", "--output", "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "h1234567890", rows[0]["commit_id"])
	assert.Contains(t, rows[0], "base")
	assert.Contains(t, rows[0], "head")

	_, err = f.run(t, "content", "o/r/7")
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestComments(t *testing.T) {
	f := newFakeAPI(t)

	out, err := f.run(t, "comments", "o/r/7", "nb.ipynb", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":1,"line":3,"user":"hubot","text":"rows changed?"},
		{"id":2,"line":3,"user":"octocat","text":"new data"}
	]`, out)

	out, err = f.run(t, "comments", "o/r/7", "nb.ipynb", "--threaded", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":1,"line":3,"user":"hubot","text":"rows changed?","replies":["new data"]}
	]`, out)
}

func TestComment(t *testing.T) {
	f := newFakeAPI(t)

	out, err := f.run(t, "comment", "o/r/7", "nb.ipynb", "--text", "looks good", "--line", "3", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"looks good"`)

	_, err = f.run(t, "comment", "o/r/7", "nb.ipynb", "--text", "agreed", "--reply-to", "1")
	require.NoError(t, err)

	require.Len(t, f.posted, 2)
	assert.Equal(t, "h1234567890", f.posted[0]["commit_id"])
	assert.Equal(t, "nb.ipynb", f.posted[0]["path"])
	assert.Equal(t, float64(3), f.posted[0]["position"])
	assert.Equal(t, float64(1), f.posted[1]["in_reply_to"])

	_, err = f.run(t, "comment", "o/r/7", "nb.ipynb", "--text", "both", "--line", "3", "--reply-to", "1")
	assert.ErrorIs(t, err, ErrCommentTarget)

	_, err = f.run(t, "comment", "o/r/7", "nb.ipynb", "--text", "neither")
	assert.ErrorIs(t, err, ErrCommentTarget)
	assert.Len(t, f.posted, 2)
}

func TestNBDiff(t *testing.T) {
	var f *fakeAPI
	base, head := filepath.Join("testdata", "base.ipynb"), filepath.Join("testdata", "head.ipynb")

	out, err := f.run(t, "nbdiff", base, head)
	require.NoError(t, err)
	assert.Contains(t, out, base+" -> "+head)
	assert.Contains(t, out, "1 modified, 1 added, 0 removed, 2 unchanged")
	assert.Contains(t, out, "## added code cell at 3")

	out, err = f.run(t, "nbdiff", base, base)
	require.NoError(t, err)
	assert.Contains(t, out, "The notebooks are identical.")

	out, err = f.run(t, "nbdiff", base, head, "--output", "json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc["cells"], 4)
	assert.NotEmpty(t, doc["diff"])

	out, err = f.run(t, "nbdiff", base, head, "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "op: patch")
}

func TestNBDiff_Errors(t *testing.T) {
	var f *fakeAPI
	base := filepath.Join("testdata", "base.ipynb")

	_, err := f.run(t, "nbdiff", base)
	assert.Error(t, err)

	_, err = f.run(t, "nbdiff", "-", "-")
	assert.Error(t, err)

	_, err = f.run(t, "nbdiff", base, filepath.Join("testdata", "missing.ipynb"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = f.run(t, "nbdiff", base, "testdata")
	assert.ErrorContains(t, err, "is a directory")

	_, err = f.run(t, "nbdiff", base, base, "--output", "raw")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.ipynb")
	require.NoError(t, os.WriteFile(bad, []byte(`{"cells": 3}`), 0o600))
	_, err = f.run(t, "nbdiff", base, bad)
	assert.ErrorContains(t, err, "current notebook: invalid notebook")
}

func stubPicker(t *testing.T, terminal bool, choose string) *[]differ.Choice {
	t.Helper()
	var offered []differ.Choice
	origTerm, origPick := isTerminal, pick
	t.Cleanup(func() { isTerminal, pick = origTerm, origPick })

	isTerminal = func() bool { return terminal }
	pick = func(_ string, choices []differ.Choice) (string, bool, error) {
		offered = choices
		return choose, choose != "", nil
	}
	return &offered
}

func TestReview_NamedFile(t *testing.T) {
	f := newFakeAPI(t)

	out, err := f.run(t, "review", "o/r/7", "nb.ipynb", "--comments")
	require.NoError(t, err)
	assert.Contains(t, out, "nb.ipynb in o/r/7 @ h123456")
	assert.Contains(t, out, "1 modified, 1 added")
	assert.Contains(t, out, "1 comment thread(s)")
	assert.Contains(t, out, "@3 hubot: rows changed?")
	assert.Contains(t, out, "    octocat: new data")
}

func TestReview_Picker(t *testing.T) {
	f := newFakeAPI(t)

	offered := stubPicker(t, true, "extra.ipynb")
	out, err := f.run(t, "review", "o/r/7")
	require.NoError(t, err)
	assert.Contains(t, out, "extra.ipynb in o/r/7")
	require.Len(t, *offered, 2)
	assert.Equal(t, "nb.ipynb", (*offered)[0].Name)
	assert.Equal(t, "added +9 -0", (*offered)[1].Detail)

	stubPicker(t, true, "")
	out, err = f.run(t, "review", "o/r/7")
	require.NoError(t, err)
	assert.Empty(t, out)

	stubPicker(t, false, "nb.ipynb")
	_, err = f.run(t, "review", "o/r/7")
	assert.ErrorContains(t, err, "name one of: nb.ipynb, extra.ipynb")
}

func TestMissingToken(t *testing.T) {
	t.Setenv("PRCTL_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	var f *fakeAPI
	_, err := f.run(t, "user")
	assert.ErrorIs(t, err, github.ErrNoToken)
}

func TestCompletion(t *testing.T) {
	var f *fakeAPI

	out, err := f.run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _prctl prctl")

	out, err = f.run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef prctl")

	t.Setenv("SHELL", "/bin/fish")
	_, err = f.run(t, "completion")
	assert.Error(t, err)
}

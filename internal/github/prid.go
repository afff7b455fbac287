// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidPRID = errors.New("invalid pull request id")

// PRLink turns a pull request id into an API link. Accepted forms are
//
//	https://api.github.com/repos/owner/repo/pulls/7   (used as-is)
//	https://github.com/owner/repo/pull/7              (rewritten to the API form)
//	owner/repo/7
func PRLink(id string) (string, error) {
	id = strings.TrimSpace(id)

	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		u, err := url.Parse(id)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %w", ErrInvalidPRID, id, err)
		}
		if u.Host == "github.com" {
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(parts) != 4 || parts[2] != "pull" {
				return "", fmt.Errorf("%w: %q", ErrInvalidPRID, id)
			}
			return shortLink(parts[0], parts[1], parts[3], id)
		}
		return strings.TrimRight(id, "/"), nil
	}

	parts := strings.Split(id, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q: want owner/repo/number or a URL", ErrInvalidPRID, id)
	}
	return shortLink(parts[0], parts[1], parts[2], id)
}

func shortLink(owner, repo, number, id string) (string, error) {
	if owner == "" || repo == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPRID, id)
	}
	if n, err := strconv.Atoi(number); err != nil || n <= 0 {
		return "", fmt.Errorf("%w: %q: bad number %q", ErrInvalidPRID, id, number)
	}
	return "repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/pulls/" + number, nil
}

// escapePath escapes each segment of a repository file path.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

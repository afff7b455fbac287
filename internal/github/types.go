// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package github

// User is the authenticated account.
type User struct {
	Username string `json:"username"`
}

// PullRequest is one open pull request from the issue search.
type PullRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	InternalID int64  `json:"internal_id"`
	Link       string `json:"link"`
	UpdatedAt  string `json:"updated_at"`
}

// File is one file changed by a pull request.
type File struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Additions int64  `json:"additions"`
	Deletions int64  `json:"deletions"`
}

// FileLinks are the contents API URLs of a file on both sides of a pull
// request.
type FileLinks struct {
	BaseURL  string `json:"base_url"`
	HeadURL  string `json:"head_url"`
	CommitID string `json:"commit_id"`
}

// FileContent is a file's text at the base and head commits. A side on which
// the file does not exist is empty.
type FileContent struct {
	BaseContent string `json:"base_content"`
	HeadContent string `json:"head_content"`
	CommitID    string `json:"commit_id"`
}

// Comment is one review comment on a file.
type Comment struct {
	ID          int64  `json:"id"`
	LineNumber  int64  `json:"line_number"`
	Text        string `json:"text"`
	UpdatedAt   string `json:"updated_at"`
	UserName    string `json:"user_name"`
	UserPic     string `json:"user_pic"`
	InReplyToID int64  `json:"in_reply_to_id,omitempty"`
}

// NewComment is the input of PostFileComment. Either InReplyTo is set, or
// CommitID and Position locate a new thread.
type NewComment struct {
	Text      string
	InReplyTo int64
	CommitID  string
	Position  int64
}

// Thread is a root comment and its replies in posting order.
type Thread struct {
	Comment
	Replies []Comment `json:"replies"`
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package github

// Threads groups comments into threads. Replies are attached to their root
// comment in the order given; a reply whose root is missing starts its own
// thread.
func Threads(comments []Comment) []Thread {
	threads := []Thread{}
	index := map[int64]int{}

	for _, c := range comments {
		if c.InReplyToID != 0 {
			continue
		}
		index[c.ID] = len(threads)
		threads = append(threads, Thread{Comment: c})
	}

	for _, c := range comments {
		if c.InReplyToID == 0 {
			continue
		}
		if i, ok := index[c.InReplyToID]; ok {
			threads[i].Replies = append(threads[i].Replies, c)
			continue
		}
		index[c.ID] = len(threads)
		threads = append(threads, Thread{Comment: c})
	}

	return threads
}

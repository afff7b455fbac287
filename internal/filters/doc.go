// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows command results with --filter expressions.
//
// Each expression is key, operand and value, for example:
//
//   - "title@notebook" : title contains "notebook"
//   - "status=added" : status equals "added"
//   - "additions>10" : numeric comparison
//   - "name/\.ipynb$" : regular expression
//   - "user_name!=hubot" : any operand can be negated with !
//
// Operands are = (equal), ~ (equal ignoring case), ^ (prefix), < and >
// (numeric or lexical), @ (substring, or membership for lists and objects)
// and / (regex). Expressions are comma separated unless PRCTL_FILTER_DELIM
// says otherwise.
//
// A key with a leading underscore is server side. It is not applied locally
// but passed to the search API as a qualifier, so "_repo=octo/demo" becomes
// "repo:octo/demo" and "_label!=wip" becomes "-label:wip".
package filters

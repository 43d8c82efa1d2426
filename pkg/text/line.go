// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"sort"
	"strings"
)

// LineResult describes what happened to a single line
type LineResult struct {
	Line          string // rewritten line, terminator included
	Set           string // name of the rule set that was selected, empty if none
	Substitutions int    // number of rule matches replaced
}

// Changed reports whether the line differs from its input
func (r LineResult) Changed() bool { return r.Substitutions > 0 }

// RewriteLine applies the first rule set whose triggers appear in the line.
// The line terminator, if any, is left untouched.
func (r *Rules) RewriteLine(line string) LineResult {
	body, eol := splitEOL(line)

	for _, set := range r.sets {
		if !set.Triggers(body) {
			continue
		}
		out, n := set.Apply(body)
		return LineResult{Line: out + eol, Set: set.name, Substitutions: n}
	}

	return LineResult{Line: line}
}

// Apply runs the substitution pass and then closes every quote it opened.
func (s *RuleSet) Apply(body string) (string, int) {
	out, opens := s.substitute(body)
	if len(opens) == 0 {
		return body, 0
	}
	return closeQuotes(out, opens), len(opens)
}

// Substitute runs only the substitution pass, leaving opened quotes unclosed.
func (s *RuleSet) Substitute(body string) string {
	out, _ := s.substitute(body)
	return out
}

// substitute replaces each matched span with its mapped replacement. It
// returns the new body and, for each replacement, the offset in the new
// body from which the closing quote is searched. Rules without CloseQuote
// still report an offset so callers can count them; closeQuotes ignores
// those marked negative.
func (s *RuleSet) substitute(body string) (string, []int) {
	matches := s.re.FindAllStringIndex(body, -1)
	if len(matches) == 0 {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body) + len(matches)*8)

	opens := make([]int, 0, len(matches))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		rule := s.byKey[body[start:end]]

		// an attribute whose value is already quoted has nothing to fix
		if strings.HasSuffix(rule.Pattern, "=") && end < len(body) && isQuote(body[end]) {
			continue
		}

		b.WriteString(body[last:start])
		at := b.Len()
		b.WriteString(rule.Replacement)
		last = end

		if !rule.CloseQuote {
			opens = append(opens, -1)
			continue
		}
		opens = append(opens, at+strings.LastIndexByte(rule.Replacement, '"')+1)
	}
	b.WriteString(body[last:])

	return b.String(), opens
}

// closeQuotes inserts a '"' before the first '>' at or after each open
// offset. An open quote with no '>' after it on the line is closed at the
// end of the attribute value instead.
func closeQuotes(body string, opens []int) string {
	seen := make(map[int]bool, len(opens))
	closes := make([]int, 0, len(opens))
	for _, o := range opens {
		if o < 0 {
			continue
		}
		at := strings.IndexByte(body[o:], '>')
		if at < 0 {
			at = valueEnd(body[o:])
		}
		if !seen[o+at] {
			seen[o+at] = true
			closes = append(closes, o+at)
		}
	}
	if len(closes) == 0 {
		return body
	}
	sort.Ints(closes)

	var b strings.Builder
	b.Grow(len(body) + len(closes))
	last := 0
	for _, c := range closes {
		b.WriteString(body[last:c])
		b.WriteByte('"')
		last = c
	}
	b.WriteString(body[last:])
	return b.String()
}

func valueEnd(s string) int {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return i
	}
	return len(s)
}

func isQuote(c byte) bool { return c == '"' || c == '\'' }

func splitEOL(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

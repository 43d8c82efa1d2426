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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// TableClass is the class attribute injected into bare table tags.
const TableClass = "table-responsive table-striped"

var ErrNoRules = errors.Base("rule set has no rules")

// 🔄 Rule maps a literal pattern to its replacement
type Rule struct {
	Pattern     string
	Replacement string
	// CloseQuote means the replacement opens a quote that must be closed
	// before the next '>' on the line.
	CloseQuote bool
}

// 📦 RuleSet is a group of rules applied through one combined pattern
type RuleSet struct {
	name     string
	triggers []string
	byKey    map[string]Rule
	re       *regexp.Regexp
}

// 🏭 NewRuleSet compiles rules into a single alternation. Every rule
// pattern is also a trigger for the set.
func NewRuleSet(name string, rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, errors.Errorf("%s: %w", name, ErrNoRules)
	}

	set := &RuleSet{
		name:  name,
		byKey: make(map[string]Rule, len(rules)),
	}

	alts := make([]string, 0, len(rules))
	for i, r := range rules {
		if r.Pattern == "" {
			return nil, errors.Errorf("%s: rule %d: pattern is required", name, i)
		}
		if _, ok := set.byKey[r.Pattern]; ok {
			return nil, errors.Errorf("%s: rule %d: duplicate pattern %q", name, i, r.Pattern)
		}
		set.byKey[r.Pattern] = r
		set.triggers = append(set.triggers, r.Pattern)
		alts = append(alts, regexp.QuoteMeta(r.Pattern))
	}

	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		return nil, errors.Errorf("%s: compiling rules: %w", name, err)
	}
	set.re = re

	return set, nil
}

// Name returns the rule set name
func (s *RuleSet) Name() string { return s.name }

// Triggers reports whether the line selects this rule set
func (s *RuleSet) Triggers(line string) bool {
	for _, t := range s.triggers {
		if strings.Contains(line, t) {
			return true
		}
	}
	return false
}

// Rules is the immutable, ordered collection of rule sets. The first set
// whose triggers match a line is the only one applied to it.
type Rules struct {
	sets []*RuleSet
}

// NewRules orders the given sets by priority
func NewRules(sets ...*RuleSet) *Rules {
	return &Rules{sets: append([]*RuleSet(nil), sets...)}
}

// Sets returns the rule sets in priority order
func (r *Rules) Sets() []*RuleSet {
	return append([]*RuleSet(nil), r.sets...)
}

// 🎯 DefaultRules builds the fixed markdown attribute rules: unquoted class
// values and bare tables first, then unquoted scope values.
func DefaultRules() *Rules {
	attrs, err := NewRuleSet("attributes",
		Rule{Pattern: "class=", Replacement: `class="`, CloseQuote: true},
		Rule{Pattern: "<table>", Replacement: `<table class="` + TableClass + `>`, CloseQuote: true},
	)
	if err != nil {
		panic(err)
	}

	scope, err := NewRuleSet("scope",
		Rule{Pattern: "scope=row", Replacement: `scope="row"`},
		Rule{Pattern: "scope=col", Replacement: `scope="col"`},
	)
	if err != nil {
		panic(err)
	}

	return NewRules(attrs, scope)
}

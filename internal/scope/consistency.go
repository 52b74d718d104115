package scope

import (
	"fmt"
	"regexp"
	"strconv"
)

// WeekSlugPattern matches the week identifiers accepted in documents.
var WeekSlugPattern = regexp.MustCompile(`^w\d{1,2}$`)

// checkConsistency adds the cross-field violations of c to verr.
func checkConsistency(c WeekContext, verr *ValidationError) {
	if c.Slug != "" && WeekSlugPattern.MatchString(c.Slug) {
		if n, _ := strconv.Atoi(c.Slug[1:]); n != c.Week {
			verr.add("slug", fmt.Sprintf("%q does not match week %d", c.Slug, c.Week))
		}
	}

	policy := c.Correction
	forbidden := make(map[CorrectionTopic]bool, len(policy.MustNotCorrect))
	for _, t := range policy.MustNotCorrect {
		forbidden[t.Canonical()] = true
	}
	allowed := make(map[CorrectionTopic]bool, len(policy.MayCorrect))
	for i, t := range policy.MayCorrect {
		t = t.Canonical()
		allowed[t] = true
		if forbidden[t] {
			verr.add(fieldPath("correction", "may_correct", strconv.Itoa(i)),
				fmt.Sprintf("%q is also listed in must_not_correct", t))
		}
	}

	// A topic that has not been taught can never be correctable.
	for i, g := range c.NotTaught.Grammar {
		if ct, ok := CorrectionTopicFor(g); ok && allowed[ct] {
			verr.add(fieldPath("not_taught", "grammar", strconv.Itoa(i)),
				fmt.Sprintf("%q is not taught but correction.may_correct permits correcting it via %q", g, ct))
		}
	}
	for i, v := range c.NotTaught.Vocabulary {
		if ct, ok := CorrectionTopicForVocabulary(v); ok && allowed[ct] {
			verr.add(fieldPath("not_taught", "vocabulary", strconv.Itoa(i)),
				fmt.Sprintf("%q is not taught but correction.may_correct permits correcting it via %q", v, ct))
		}
	}

	taughtGrammar := make(map[GrammarTopic]bool)
	for _, g := range c.Taught.Grammar.Topics() {
		taughtGrammar[g.Canonical()] = true
	}
	for i, g := range c.NotTaught.Grammar {
		if taughtGrammar[g.Canonical()] {
			verr.add(fieldPath("not_taught", "grammar", strconv.Itoa(i)),
				fmt.Sprintf("%q is marked both taught and not taught", g))
		}
	}

	taughtVocab := make(map[VocabularyTopic]bool)
	for _, v := range c.Taught.Vocabulary.Topics() {
		taughtVocab[v] = true
	}
	for i, v := range c.NotTaught.Vocabulary {
		if taughtVocab[v.Canonical()] {
			verr.add(fieldPath("not_taught", "vocabulary", strconv.Itoa(i)),
				fmt.Sprintf("%q is marked both taught and not taught", v))
		}
	}

	taughtPragma := make(map[SociopragmaticTopic]bool)
	for _, s := range c.Taught.Sociopragmatics {
		taughtPragma[s.Canonical()] = true
	}
	for i, s := range c.NotTaught.Sociopragmatics {
		if taughtPragma[s.Canonical()] {
			verr.add(fieldPath("not_taught", "sociopragmatics", strconv.Itoa(i)),
				fmt.Sprintf("%q is marked both taught and not taught", s))
		}
	}

	if n := c.Taught.Grammar.Numerals; n != nil && n.Cardinal != nil && n.Cardinal.Range != nil {
		r := n.Cardinal.Range
		if r.From != nil && r.To != nil && *r.From > *r.To {
			verr.add("taught.grammar.numerals.cardinal.range",
				fmt.Sprintf("from %d is greater than to %d", *r.From, *r.To))
		}
	}
}

package scope

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_ConsistencyErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantFld string
		wantMsg string
	}{
		{
			name: "may and must-not overlap",
			mutate: func(s string) string {
				return strings.Replace(s, "[Großschreibung, Artikeldeklination, Perfekt]", "[Großschreibung, Verbformen]", 1)
			},
			wantFld: "correction.may_correct.2",
			wantMsg: "also listed in must_not_correct",
		},
		{
			name: "not taught but correctable",
			mutate: func(s string) string {
				return strings.Replace(s, "Wortstellung]", "Wortstellung, Plural]", 1)
			},
			wantFld: "not_taught.grammar.2",
			wantMsg: "permits correcting it",
		},
		{
			name: "verb second not taught but word order correctable",
			mutate: func(s string) string {
				return strings.Replace(s, "[Akkusativ, Dativ, Plural]", "[Akkusativ, Verbzweistellung]", 1)
			},
			wantFld: "not_taught.grammar.1",
			wantMsg: `permits correcting it via "Wortstellung"`,
		},
		{
			name: "conjugation not taught but verb forms correctable",
			mutate: func(s string) string {
				return strings.Replace(s, "[Akkusativ, Dativ, Plural]", "[Konjugation, Dativ]", 1)
			},
			wantFld: "not_taught.grammar.0",
			wantMsg: `permits correcting it via "Verbformen"`,
		},
		{
			name: "vocabulary not taught but correctable",
			mutate: func(s string) string {
				return strings.Replace(s, "  sociopragmatics: [nonverbale Kommunikation]",
					"  vocabulary: [Wetter, Abschied]\n  sociopragmatics: [nonverbale Kommunikation]", 1)
			},
			wantFld: "not_taught.vocabulary.1",
			wantMsg: `permits correcting it via "Abschied"`,
		},
		{
			name: "clock time not taught but correctable",
			mutate: func(s string) string {
				s = strings.Replace(s, "Wortstellung]", "Wortstellung, Stundenangabe]", 1)
				return strings.Replace(s, "  sociopragmatics: [nonverbale Kommunikation]",
					"  vocabulary: [Uhrzeit]\n  sociopragmatics: [nonverbale Kommunikation]", 1)
			},
			wantFld: "not_taught.vocabulary.0",
			wantMsg: `permits correcting it via "Stundenangabe"`,
		},
		{
			name: "grammar taught and not taught",
			mutate: func(s string) string {
				return strings.Replace(s, "[Akkusativ, Dativ, Plural]", "[Akkusativ, W-Fragen]", 1)
			},
			wantFld: "not_taught.grammar.1",
			wantMsg: "both taught and not taught",
		},
		{
			name: "vocabulary taught and not taught",
			mutate: func(s string) string {
				return strings.Replace(s, "  sociopragmatics: [nonverbale Kommunikation]",
					"  vocabulary: [Wetter, Herkunft]\n  sociopragmatics: [nonverbale Kommunikation]", 1)
			},
			wantFld: "not_taught.vocabulary.1",
			wantMsg: "both taught and not taught",
		},
		{
			name: "vocabulary implied by expressions",
			mutate: func(s string) string {
				return strings.Replace(s, "  sociopragmatics: [nonverbale Kommunikation]",
					"  vocabulary: [Begrüßungen]\n  sociopragmatics: [nonverbale Kommunikation]", 1)
			},
			wantFld: "not_taught.vocabulary.0",
			wantMsg: "both taught and not taught",
		},
		{
			name: "sociopragmatics taught and not taught",
			mutate: func(s string) string {
				return strings.Replace(s, "[nonverbale Kommunikation]", "[nonverbale Kommunikation, du/Sie]", 1)
			},
			wantFld: "not_taught.sociopragmatics.1",
			wantMsg: "both taught and not taught",
		},
		{
			name: "slug disagrees with week",
			mutate: func(s string) string {
				return strings.Replace(s, "slug: w01", "slug: w02", 1)
			},
			wantFld: "slug",
			wantMsg: "does not match week 1",
		},
		{
			name: "inverted numeral range",
			mutate: func(s string) string {
				return strings.Replace(s, "    w_questions: [Wie, Woher, Wo]",
					"    w_questions: [Wie, Woher, Wo]\n    numerals:\n      cardinal:\n        learned: true\n        range: {from: 12, to: 0}", 1)
			},
			wantFld: "taught.grammar.numerals.cardinal.range",
			wantMsg: "greater than",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(validDoc)))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Parse() error = %v, want *ValidationError", err)
			}
			found := false
			for _, is := range verr.Issues {
				if is.Field == tt.wantFld && strings.Contains(is.Reason, tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("issues = %v, want %q containing %q", verr.Issues, tt.wantFld, tt.wantMsg)
			}
		})
	}
}

func TestGrammarTopics(t *testing.T) {
	from, to := 0, 100
	g := Grammar{
		VerbSecond: true,
		WQuestions: []string{"Wie spät ist es?"},
		Cases: &Cases{
			Nominative: &Case{Learned: true},
			Accusative: &Case{Learned: true},
			Dative:     &Case{Learned: false},
		},
		Articles:       &Articles{Negative: &FormsItem{Learned: true}},
		SeparableVerbs: &SeparableVerbs{Learned: true},
		Numerals:       &Numerals{Cardinal: &Cardinal{Learned: true, Range: &NumberRange{From: &from, To: &to}}},
		Adverbs:        &Adverbs{Temporal: &ExamplesItem{Learned: false}},
	}

	want := []GrammarTopic{
		GrammarVerbSecond, GrammarWQuestions, GrammarNominative, GrammarAccusative,
		GrammarArticles, GrammarSeparableVerbs, GrammarNumerals,
	}
	got := g.Topics()
	if len(got) != len(want) {
		t.Fatalf("Topics() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Topics()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVocabularyTopics_NoDuplicates(t *testing.T) {
	v := Vocabulary{
		Themes:      []VocabularyTopic{VocabClockTime, VocabGreetings},
		ClockTime:   &ClockTime{Learned: true},
		Weekdays:    &Weekdays{Learned: true},
		Activities:  &Activities{Learned: true, DailyRoutine: []string{"aufstehen"}},
		Expressions: &Expressions{Greeting: []string{"Hallo"}},
	}

	got := v.Topics()
	want := []VocabularyTopic{VocabClockTime, VocabGreetings, VocabWeekdays, VocabDailyRoutine}
	if len(got) != len(want) {
		t.Fatalf("Topics() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Topics()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSnapshot(t *testing.T) {
	c := MustParse([]byte(validDoc))
	s := Snapshot(c)

	if s.Course != CourseA1 || s.Week != 1 {
		t.Errorf("Snapshot key = %s/%d, want A1/1", s.Course, s.Week)
	}
	if s.MaxIssues != 3 {
		t.Errorf("MaxIssues = %d, want 3", s.MaxIssues)
	}
	if len(s.MayCorrect) != 4 || s.MayCorrect[0] != "Begrüßung" {
		t.Errorf("MayCorrect = %v, want 4 topics starting with Begrüßung", s.MayCorrect)
	}

	s.MayCorrect[0] = "mutated"
	if c.Correction.MayCorrect[0] != CorrectGreeting {
		t.Error("Snapshot should not share storage with the context")
	}
}

func TestClone_IsDeep(t *testing.T) {
	c := MustParse([]byte(validDoc))
	cl := c.Clone()

	cl.Correction.MayCorrect[0] = CorrectPlural
	cl.Taught.Grammar.Conjugation.Verbs[0] = "gehen"

	if c.Correction.MayCorrect[0] != CorrectGreeting {
		t.Error("Clone shares MayCorrect with the original")
	}
	if c.Taught.Grammar.Conjugation.Verbs[0] != "heißen" {
		t.Error("Clone shares Conjugation with the original")
	}
}

func TestCorrectionTopicFor(t *testing.T) {
	if ct, ok := CorrectionTopicFor(GrammarAccusative); !ok || ct != CorrectAccusative {
		t.Errorf("CorrectionTopicFor(Akkusativ) = %q, %v", ct, ok)
	}
	if _, ok := CorrectionTopicFor(GrammarStatements); ok {
		t.Error("CorrectionTopicFor(Aussagesatz) should have no correction topic")
	}
	tests := []struct {
		grammar GrammarTopic
		want    CorrectionTopic
	}{
		{GrammarVerbSecond, CorrectWordOrder},
		{GrammarConjugation, CorrectVerbForms},
		{GrammarPossessiveArticles, CorrectPossessives},
		{GrammarNumerals, CorrectNumerals},
	}
	for _, tt := range tests {
		if ct, ok := CorrectionTopicFor(tt.grammar); !ok || ct != tt.want {
			t.Errorf("CorrectionTopicFor(%q) = %q, %v, want %q", tt.grammar, ct, ok, tt.want)
		}
	}
}

func TestCorrectionTopicForVocabulary(t *testing.T) {
	tests := []struct {
		vocab  VocabularyTopic
		want   CorrectionTopic
		wantOK bool
	}{
		{VocabFarewell, CorrectFarewell, true},
		{VocabGreetings, CorrectGreeting, true},
		{VocabClockTime, CorrectClockTime, true},
		{VocabWeather, "", false},
	}
	for _, tt := range tests {
		ct, ok := CorrectionTopicForVocabulary(tt.vocab)
		if ok != tt.wantOK || ct != tt.want {
			t.Errorf("CorrectionTopicForVocabulary(%q) = %q, %v, want %q, %v", tt.vocab, ct, ok, tt.want, tt.wantOK)
		}
	}
}

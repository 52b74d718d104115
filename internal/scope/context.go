package scope

import (
	"encoding/json"
	"fmt"
)

// Key identifies a week context within a registry.
type Key struct {
	Course CourseLevel
	Week   int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/w%02d", k.Course, k.Week)
}

// Key returns the registry key of the context.
func (c WeekContext) Key() Key {
	return Key{Course: c.Course, Week: c.Week}
}

// Clone returns a deep copy that shares no slices or pointers with c.
func (c WeekContext) Clone() WeekContext {
	data, err := json.Marshal(c)
	if err != nil {
		panic(fmt.Sprintf("scope: clone %s: %v", c.Key(), err))
	}
	var out WeekContext
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("scope: clone %s: %v", c.Key(), err))
	}
	return out
}

// FocalPoint returns the advisory focal point, or "" when no notes exist.
func (c WeekContext) FocalPoint() string {
	if c.Notes == nil {
		return ""
	}
	return c.Notes.FocalPoint
}

// Topics derives the grammar topics covered by the structured record.
func (g Grammar) Topics() []GrammarTopic {
	var out []GrammarTopic
	add := func(ok bool, t GrammarTopic) {
		if ok {
			out = append(out, t)
		}
	}

	add(g.VerbSecond, GrammarVerbSecond)
	add(g.Statements, GrammarStatements)
	add(len(g.WQuestions) > 0, GrammarWQuestions)
	add(g.YesNoQuestions, GrammarYesNoQuestions)
	add(g.Conjugation != nil && len(g.Conjugation.Verbs) > 0, GrammarConjugation)
	add(len(g.PersonalPronouns) > 0, GrammarPersonalPronouns)
	if c := g.Cases; c != nil {
		add(c.Nominative.learned(), GrammarNominative)
		add(c.Accusative.learned(), GrammarAccusative)
		add(c.Dative.learned(), GrammarDative)
		add(c.Genitive.learned(), GrammarGenitive)
	}
	if a := g.Articles; a != nil {
		add(a.Definite.learned() || a.Indefinite.learned() || a.Negative.learned(), GrammarArticles)
	}
	add(g.SeparableVerbs != nil && g.SeparableVerbs.Learned, GrammarSeparableVerbs)
	add(g.ModalVerbs != nil && g.ModalVerbs.Learned, GrammarModalVerbs)
	add(g.PossessiveArticles != nil && g.PossessiveArticles.Learned, GrammarPossessiveArticles)
	add(g.IndefinitePronouns.learned(), GrammarIndefinitePronouns)
	add(g.Numerals != nil && g.Numerals.Cardinal != nil && g.Numerals.Cardinal.Learned, GrammarNumerals)
	add(g.Plural != nil && g.Plural.Learned, GrammarPlural)
	if n := g.Negation; n != nil {
		add(n.Nicht.learned() || n.Kein.learned(), GrammarNegation)
	}
	if a := g.Adverbs; a != nil {
		add(a.Temporal.learned() || a.Modal.learned() || a.Frequency.learned(), GrammarAdverbs)
	}
	return out
}

// Topics derives the vocabulary topics covered: the explicit themes followed
// by those implied by learned detail items, without duplicates.
func (v Vocabulary) Topics() []VocabularyTopic {
	seen := make(map[VocabularyTopic]bool)
	var out []VocabularyTopic
	add := func(ok bool, t VocabularyTopic) {
		t = t.Canonical()
		if ok && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, t := range v.Themes {
		add(true, t)
	}
	add(v.Alphabet != nil && v.Alphabet.Learned, VocabAlphabet)
	add(v.Countries.learned(), VocabCountries)
	add(v.Languages.learned(), VocabLanguages)
	add(v.Professions.learned(), VocabProfessions)
	add(v.Family.learned(), VocabFamily)
	add(v.Household.learned(), VocabHousehold)
	add(v.School.learned(), VocabSchoolSupplies)
	add(v.Groceries.learned(), VocabGroceries)
	add(v.Drinks.learned(), VocabDrinks)
	add(v.Weekdays != nil && v.Weekdays.Learned, VocabWeekdays)
	add(v.ClockTime != nil && v.ClockTime.Learned, VocabClockTime)
	if a := v.Activities; a != nil && a.Learned {
		add(len(a.DailyRoutine) > 0, VocabDailyRoutine)
		add(len(a.Weekend) > 0, VocabLeisure)
	}
	if e := v.Expressions; e != nil {
		add(len(e.Greeting) > 0, VocabGreetings)
		add(len(e.Farewell) > 0, VocabFarewell)
		add(len(e.Restaurant) > 0, VocabRestaurant)
		add(len(e.Shopping) > 0, VocabShopping)
	}
	return out
}

func (c *Case) learned() bool         { return c != nil && c.Learned }
func (f *FormsItem) learned() bool    { return f != nil && f.Learned }
func (u *UsageItem) learned() bool    { return u != nil && u.Learned }
func (e *ExamplesItem) learned() bool { return e != nil && e.Learned }

// ScopeSnapshot is the minimal excerpt of a WeekContext stored alongside a
// submission, recording which rules were active when it was reviewed.
type ScopeSnapshot struct {
	Course     CourseLevel `json:"course"`
	Week       int         `json:"week"`
	Title      string      `json:"title"`
	MayCorrect []string    `json:"may_correct"`
	MaxIssues  int         `json:"max_issues"`
}

// Snapshot extracts the audit excerpt of c.
func Snapshot(c WeekContext) ScopeSnapshot {
	may := make([]string, len(c.Correction.MayCorrect))
	for i, t := range c.Correction.MayCorrect {
		may[i] = string(t)
	}
	return ScopeSnapshot{
		Course:     c.Course,
		Week:       c.Week,
		Title:      c.Title,
		MayCorrect: may,
		MaxIssues:  c.Correction.MaxIssues,
	}
}

// Package scope defines the pedagogical context of a course week: what has
// been taught, what has not, and what an automated reviewer may correct.
package scope

// MaxIssuesLimit is the upper bound for CorrectionPolicy.MaxIssues.
const MaxIssuesLimit = 5

// WeekContext is the validated teaching and correction scope of one week of
// one course. Values are treated as immutable once validated.
type WeekContext struct {
	Course     CourseLevel      `yaml:"course" json:"course"`
	Week       int              `yaml:"week" json:"week"`
	Slug       string           `yaml:"slug,omitempty" json:"slug,omitempty"`
	Title      string           `yaml:"title" json:"title"`
	Taught     Taught           `yaml:"taught" json:"taught"`
	NotTaught  NotTaught        `yaml:"not_taught" json:"not_taught"`
	Correction CorrectionPolicy `yaml:"correction" json:"correction"`
	Notes      *Notes           `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Taught records everything covered up to and including the week.
type Taught struct {
	Grammar         Grammar               `yaml:"grammar" json:"grammar"`
	Vocabulary      Vocabulary            `yaml:"vocabulary" json:"vocabulary"`
	Sociopragmatics []SociopragmaticTopic `yaml:"sociopragmatics" json:"sociopragmatics"`
}

// NotTaught lists topics explicitly excluded from the week.
type NotTaught struct {
	Grammar         []GrammarTopic        `yaml:"grammar" json:"grammar"`
	Vocabulary      []VocabularyTopic     `yaml:"vocabulary,omitempty" json:"vocabulary,omitempty"`
	Sociopragmatics []SociopragmaticTopic `yaml:"sociopragmatics" json:"sociopragmatics"`
}

// CorrectionPolicy governs what a reviewer may flag for the week.
type CorrectionPolicy struct {
	MayCorrect          []CorrectionTopic `yaml:"may_correct" json:"may_correct"`
	MustNotCorrect      []CorrectionTopic `yaml:"must_not_correct" json:"must_not_correct"`
	MaxIssues           int               `yaml:"max_issues" json:"max_issues"`
	AvoidOverCorrection bool              `yaml:"avoid_over_correction" json:"avoid_over_correction"`

	// Focus and Tolerance only shape prompt phrasing.
	Focus     []string  `yaml:"focus,omitempty" json:"focus,omitempty"`
	Tolerance Tolerance `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

// Notes are advisory annotations for teachers. Never read by automated logic.
type Notes struct {
	FocalPoint string   `yaml:"focal_point,omitempty" json:"focal_point,omitempty"`
	Warnings   []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Tips       []string `yaml:"tips,omitempty" json:"tips,omitempty"`
}

// Grammar is the structured record of grammar covered so far.
type Grammar struct {
	VerbSecond         bool             `yaml:"verb_second" json:"verb_second"`
	Statements         bool             `yaml:"statements,omitempty" json:"statements,omitempty"`
	WQuestions         []string         `yaml:"w_questions,omitempty" json:"w_questions,omitempty"`
	YesNoQuestions     bool             `yaml:"yes_no_questions,omitempty" json:"yes_no_questions,omitempty"`
	Cases              *Cases           `yaml:"cases,omitempty" json:"cases,omitempty"`
	Articles           *Articles        `yaml:"articles,omitempty" json:"articles,omitempty"`
	Conjugation        *Conjugation     `yaml:"conjugation,omitempty" json:"conjugation,omitempty"`
	SeparableVerbs     *SeparableVerbs  `yaml:"separable_verbs,omitempty" json:"separable_verbs,omitempty"`
	ModalVerbs         *ModalVerbs      `yaml:"modal_verbs,omitempty" json:"modal_verbs,omitempty"`
	PersonalPronouns   []string         `yaml:"personal_pronouns,omitempty" json:"personal_pronouns,omitempty"`
	PossessiveArticles *Possessives     `yaml:"possessive_articles,omitempty" json:"possessive_articles,omitempty"`
	IndefinitePronouns *FormsItem       `yaml:"indefinite_pronouns,omitempty" json:"indefinite_pronouns,omitempty"`
	Numerals           *Numerals        `yaml:"numerals,omitempty" json:"numerals,omitempty"`
	Plural             *Plural          `yaml:"plural,omitempty" json:"plural,omitempty"`
	Negation           *Negation        `yaml:"negation,omitempty" json:"negation,omitempty"`
	Adverbs            *Adverbs         `yaml:"adverbs,omitempty" json:"adverbs,omitempty"`
}

// Cases records which grammatical cases have been introduced.
type Cases struct {
	Nominative *Case `yaml:"nominative,omitempty" json:"nominative,omitempty"`
	Accusative *Case `yaml:"accusative,omitempty" json:"accusative,omitempty"`
	Dative     *Case `yaml:"dative,omitempty" json:"dative,omitempty"`
	Genitive   *Case `yaml:"genitive,omitempty" json:"genitive,omitempty"`
}

// Case is one grammatical case with its articles and usages.
type Case struct {
	Learned  bool     `yaml:"learned" json:"learned"`
	Articles []string `yaml:"articles,omitempty" json:"articles,omitempty"`
	Usage    []string `yaml:"usage,omitempty" json:"usage,omitempty"`
}

// Articles records the article families introduced.
type Articles struct {
	Definite   *FormsItem `yaml:"definite,omitempty" json:"definite,omitempty"`
	Indefinite *FormsItem `yaml:"indefinite,omitempty" json:"indefinite,omitempty"`
	Negative   *FormsItem `yaml:"negative,omitempty" json:"negative,omitempty"`
}

// FormsItem is a learned flag with the surface forms seen.
type FormsItem struct {
	Learned bool     `yaml:"learned" json:"learned"`
	Forms   []string `yaml:"forms,omitempty" json:"forms,omitempty"`
}

// Conjugation lists the verbs and pronouns practised.
type Conjugation struct {
	Verbs     []string `yaml:"verbs" json:"verbs"`
	Pronouns  []string `yaml:"pronouns,omitempty" json:"pronouns,omitempty"`
	Regular   []string `yaml:"regular,omitempty" json:"regular,omitempty"`
	Irregular []string `yaml:"irregular,omitempty" json:"irregular,omitempty"`
}

// SeparableVerbs records separable-prefix verbs.
type SeparableVerbs struct {
	Learned  bool     `yaml:"learned" json:"learned"`
	Prefixes []string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
	Examples []string `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// ModalVerbs records the modal verbs introduced.
type ModalVerbs struct {
	Learned    bool     `yaml:"learned" json:"learned"`
	Verbs      []string `yaml:"verbs,omitempty" json:"verbs,omitempty"`
	Conjugated bool     `yaml:"conjugated,omitempty" json:"conjugated,omitempty"`
}

// Possessives records possessive articles.
type Possessives struct {
	Learned        bool     `yaml:"learned" json:"learned"`
	Forms          []string `yaml:"forms,omitempty" json:"forms,omitempty"`
	NominativeOnly bool     `yaml:"nominative_only,omitempty" json:"nominative_only,omitempty"`
}

// Numerals records the cardinal number range taught.
type Numerals struct {
	Cardinal *Cardinal `yaml:"cardinal,omitempty" json:"cardinal,omitempty"`
}

// Cardinal is a learned flag with an optional inclusive range.
type Cardinal struct {
	Learned bool         `yaml:"learned" json:"learned"`
	Range   *NumberRange `yaml:"range,omitempty" json:"range,omitempty"`
}

// NumberRange is an inclusive numeric range.
type NumberRange struct {
	From *int `yaml:"from,omitempty" json:"from,omitempty"`
	To   *int `yaml:"to,omitempty" json:"to,omitempty"`
}

// Plural records plural endings.
type Plural struct {
	Learned  bool         `yaml:"learned" json:"learned"`
	Endings  []string     `yaml:"endings,omitempty" json:"endings,omitempty"`
	Examples []PluralPair `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// PluralPair is a singular/plural example.
type PluralPair struct {
	Singular string `yaml:"singular" json:"singular"`
	Plural   string `yaml:"plural" json:"plural"`
}

// Negation records nicht/kein usage.
type Negation struct {
	Nicht *UsageItem `yaml:"nicht,omitempty" json:"nicht,omitempty"`
	Kein  *UsageItem `yaml:"kein,omitempty" json:"kein,omitempty"`
}

// UsageItem is a learned flag with usage notes.
type UsageItem struct {
	Learned bool     `yaml:"learned" json:"learned"`
	Usage   []string `yaml:"usage,omitempty" json:"usage,omitempty"`
}

// Adverbs records adverb groups.
type Adverbs struct {
	Temporal  *ExamplesItem `yaml:"temporal,omitempty" json:"temporal,omitempty"`
	Modal     *ExamplesItem `yaml:"modal,omitempty" json:"modal,omitempty"`
	Frequency *ExamplesItem `yaml:"frequency,omitempty" json:"frequency,omitempty"`
}

// ExamplesItem is a learned flag with example words.
type ExamplesItem struct {
	Learned  bool     `yaml:"learned" json:"learned"`
	Examples []string `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// Vocabulary is the structured record of vocabulary covered so far.
type Vocabulary struct {
	Themes      []VocabularyTopic `yaml:"themes" json:"themes"`
	Alphabet    *Alphabet         `yaml:"alphabet,omitempty" json:"alphabet,omitempty"`
	Countries   *ExamplesItem     `yaml:"countries,omitempty" json:"countries,omitempty"`
	Languages   *ExamplesItem     `yaml:"languages,omitempty" json:"languages,omitempty"`
	Professions *ExamplesItem     `yaml:"professions,omitempty" json:"professions,omitempty"`
	Family      *ExamplesItem     `yaml:"family,omitempty" json:"family,omitempty"`
	Household   *ExamplesItem     `yaml:"household,omitempty" json:"household,omitempty"`
	School      *ExamplesItem     `yaml:"school,omitempty" json:"school,omitempty"`
	Groceries   *ExamplesItem     `yaml:"groceries,omitempty" json:"groceries,omitempty"`
	Drinks      *ExamplesItem     `yaml:"drinks,omitempty" json:"drinks,omitempty"`
	Weekdays    *Weekdays         `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`
	ClockTime   *ClockTime        `yaml:"clock_time,omitempty" json:"clock_time,omitempty"`
	Activities  *Activities       `yaml:"activities,omitempty" json:"activities,omitempty"`
	Expressions *Expressions      `yaml:"expressions,omitempty" json:"expressions,omitempty"`
}

// Alphabet records alphabet and spelling practice.
type Alphabet struct {
	Learned  bool `yaml:"learned" json:"learned"`
	Spelling bool `yaml:"spelling,omitempty" json:"spelling,omitempty"`
}

// Weekdays records whether weekdays were introduced.
type Weekdays struct {
	Learned bool `yaml:"learned" json:"learned"`
	All     bool `yaml:"all,omitempty" json:"all,omitempty"`
}

// ClockTime records formal and informal time-telling phrases.
type ClockTime struct {
	Learned  bool     `yaml:"learned" json:"learned"`
	Formal   []string `yaml:"formal,omitempty" json:"formal,omitempty"`
	Informal []string `yaml:"informal,omitempty" json:"informal,omitempty"`
}

// Activities records activity vocabulary.
type Activities struct {
	Learned      bool     `yaml:"learned" json:"learned"`
	Weekend      []string `yaml:"weekend,omitempty" json:"weekend,omitempty"`
	DailyRoutine []string `yaml:"daily_routine,omitempty" json:"daily_routine,omitempty"`
}

// Expressions lists set phrases by situation.
type Expressions struct {
	Greeting   []string `yaml:"greeting,omitempty" json:"greeting,omitempty"`
	Farewell   []string `yaml:"farewell,omitempty" json:"farewell,omitempty"`
	Restaurant []string `yaml:"restaurant,omitempty" json:"restaurant,omitempty"`
	Shopping   []string `yaml:"shopping,omitempty" json:"shopping,omitempty"`
}

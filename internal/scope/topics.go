package scope

import (
	"golang.org/x/text/unicode/norm"
)

// CourseLevel identifies a curriculum track.
type CourseLevel string

const (
	CourseA1 CourseLevel = "A1"
	CourseA2 CourseLevel = "A2"
)

// Courses lists every known course level in order.
var Courses = []CourseLevel{CourseA1, CourseA2}

// Valid reports whether c belongs to the closed set of course levels.
func (c CourseLevel) Valid() bool {
	switch c {
	case CourseA1, CourseA2:
		return true
	}
	return false
}

// GrammarTopic names a teachable grammar unit.
type GrammarTopic string

const (
	GrammarVerbSecond          GrammarTopic = "Verbzweistellung"
	GrammarStatements          GrammarTopic = "Aussagesatz"
	GrammarWQuestions          GrammarTopic = "W-Fragen"
	GrammarYesNoQuestions      GrammarTopic = "Ja/Nein-Fragen"
	GrammarConjugation         GrammarTopic = "Konjugation"
	GrammarPersonalPronouns    GrammarTopic = "Personalpronomen"
	GrammarNominative          GrammarTopic = "Nominativ"
	GrammarAccusative          GrammarTopic = "Akkusativ"
	GrammarDative              GrammarTopic = "Dativ"
	GrammarGenitive            GrammarTopic = "Genitiv"
	GrammarArticles            GrammarTopic = "Artikel"
	GrammarArticleDeclension   GrammarTopic = "Artikeldeklination"
	GrammarSeparableVerbs      GrammarTopic = "Trennbare Verben"
	GrammarModalVerbs          GrammarTopic = "Modalverben"
	GrammarPossessiveArticles  GrammarTopic = "Possessivartikel"
	GrammarIndefinitePronouns  GrammarTopic = "Indefinitpronomen"
	GrammarReflexivePronouns   GrammarTopic = "Reflexivpronomen"
	GrammarNumerals            GrammarTopic = "Zahlen"
	GrammarPlural              GrammarTopic = "Plural"
	GrammarNegation            GrammarTopic = "Negation"
	GrammarAdverbs             GrammarTopic = "Adverbien"
	GrammarAdjectives          GrammarTopic = "Adjektive"
	GrammarSubordinateClauses  GrammarTopic = "Nebensätze"
	GrammarRelativeClauses     GrammarTopic = "Relativsätze"
	GrammarInfinitiveWithZu    GrammarTopic = "Infinitiv mit zu"
	GrammarPerfect             GrammarTopic = "Perfekt"
	GrammarPreterite           GrammarTopic = "Präteritum"
	GrammarPluperfect          GrammarTopic = "Plusquamperfekt"
	GrammarFuture              GrammarTopic = "Futur"
	GrammarSubjunctive         GrammarTopic = "Konjunktiv"
	GrammarPassive             GrammarTopic = "Passiv"
)

// VocabularyTopic names a vocabulary field.
type VocabularyTopic string

const (
	VocabGreetings      VocabularyTopic = "Begrüßungen"
	VocabFarewell       VocabularyTopic = "Abschied"
	VocabOrigin         VocabularyTopic = "Herkunft"
	VocabResidence      VocabularyTopic = "Wohnort"
	VocabPersonalInfo   VocabularyTopic = "Personalinformationen"
	VocabIdentity       VocabularyTopic = "Identität"
	VocabPlaces         VocabularyTopic = "Ortsangaben"
	VocabAge            VocabularyTopic = "Alter"
	VocabNames          VocabularyTopic = "Namen"
	VocabWorkLife       VocabularyTopic = "Berufsleben"
	VocabDailyRoutine   VocabularyTopic = "Tagesablauf"
	VocabClockTime      VocabularyTopic = "Uhrzeit"
	VocabWeekdays       VocabularyTopic = "Wochentage"
	VocabAlphabet       VocabularyTopic = "Alphabet"
	VocabCountries      VocabularyTopic = "Länder"
	VocabLanguages      VocabularyTopic = "Sprachen"
	VocabProfessions    VocabularyTopic = "Berufe"
	VocabFamily         VocabularyTopic = "Familie"
	VocabHobbies        VocabularyTopic = "Hobbys"
	VocabClothing       VocabularyTopic = "Kleidung"
	VocabFood           VocabularyTopic = "Essen"
	VocabGroceries      VocabularyTopic = "Lebensmittel"
	VocabDrinks         VocabularyTopic = "Getränke"
	VocabPackaging      VocabularyTopic = "Verpackungen"
	VocabMeasures       VocabularyTopic = "Maßeinheiten"
	VocabHousehold      VocabularyTopic = "Haushaltsachen"
	VocabSchoolSupplies VocabularyTopic = "Schulsachen"
	VocabRestaurant     VocabularyTopic = "Restaurant"
	VocabShopping       VocabularyTopic = "Einkaufen"
	VocabFeelings       VocabularyTopic = "Gefühle"
	VocabWeather        VocabularyTopic = "Wetter"
	VocabTravel         VocabularyTopic = "Reisen"
	VocabLeisure        VocabularyTopic = "Freizeit"
	VocabLiving         VocabularyTopic = "Wohnen"
	VocabBody           VocabularyTopic = "Körper"
	VocabAppointments   VocabularyTopic = "Termine"
)

// SociopragmaticTopic names a register or situational competence.
type SociopragmaticTopic string

const (
	PragmaDuSie           SociopragmaticTopic = "du/Sie"
	PragmaFormal          SociopragmaticTopic = "formelle Situation"
	PragmaInformal        SociopragmaticTopic = "informelle Situation"
	PragmaNonverbal       SociopragmaticTopic = "nonverbale Kommunikation"
	PragmaColloquial      SociopragmaticTopic = "Umgangssprache"
	PragmaRegionalisms    SociopragmaticTopic = "Regionalismen"
	PragmaPrepositions    SociopragmaticTopic = "Präpositionen"
	PragmaTimeExpressions SociopragmaticTopic = "Zeitangaben"
	PragmaRestaurant      SociopragmaticTopic = "Restaurant"
	PragmaShopping        SociopragmaticTopic = "Einkaufen"
	PragmaMaritalStatus   SociopragmaticTopic = "Familienstand"
)

// CorrectionTopic names something a reviewer may or must not flag. The same
// vocabulary serves both policy lists so that overlap can be detected.
type CorrectionTopic string

const (
	CorrectGreeting          CorrectionTopic = "Begrüßung"
	CorrectFarewell          CorrectionTopic = "Abschied"
	CorrectVerbForms         CorrectionTopic = "Verbformen"
	CorrectWordOrder         CorrectionTopic = "Wortstellung"
	CorrectWQuestions        CorrectionTopic = "W-Fragen"
	CorrectYesNoQuestions    CorrectionTopic = "Ja/Nein-Fragen"
	CorrectClockTime         CorrectionTopic = "Stundenangabe"
	CorrectNominative        CorrectionTopic = "Nominativ"
	CorrectAccusative        CorrectionTopic = "Akkusativ"
	CorrectSeparableVerbs    CorrectionTopic = "Trennbare Verben"
	CorrectPossessives       CorrectionTopic = "Possessivartikel"
	CorrectArticles          CorrectionTopic = "Artikel"
	CorrectPlural            CorrectionTopic = "Plural"
	CorrectNegation          CorrectionTopic = "Negation"
	CorrectModalVerbs        CorrectionTopic = "Modalverben"
	CorrectNumerals          CorrectionTopic = "Zahlen"
	CorrectLearnedVocabulary CorrectionTopic = "Vokabular gelernt"

	CorrectCapitalization      CorrectionTopic = "Großschreibung"
	CorrectPunctuation         CorrectionTopic = "Interpunktion"
	CorrectSubordinateClauses  CorrectionTopic = "Nebensätze"
	CorrectPerfect             CorrectionTopic = "Perfekt"
	CorrectPreterite           CorrectionTopic = "Präteritum"
	CorrectPluperfect          CorrectionTopic = "Plusquamperfekt"
	CorrectFuture              CorrectionTopic = "Futur"
	CorrectSubjunctive         CorrectionTopic = "Konjunktiv"
	CorrectPassive             CorrectionTopic = "Passiv"
	CorrectArticleDeclension   CorrectionTopic = "Artikeldeklination"
	CorrectDative              CorrectionTopic = "Dativ"
	CorrectGenitive            CorrectionTopic = "Genitiv"
	CorrectReflexivePronouns   CorrectionTopic = "Reflexivpronomen"
	CorrectRelativeClauses     CorrectionTopic = "Relativsätze"
	CorrectInfinitiveWithZu    CorrectionTopic = "Infinitiv mit zu"
	CorrectUnlearnedVocabulary CorrectionTopic = "Vokabular nicht gelernt"
)

// Tolerance is the advisory error tolerance for a week.
type Tolerance string

const (
	ToleranceLow    Tolerance = "low"
	ToleranceMedium Tolerance = "medium"
	ToleranceHigh   Tolerance = "high"
)

var (
	grammarTopics = setOf(
		GrammarVerbSecond, GrammarStatements, GrammarWQuestions, GrammarYesNoQuestions,
		GrammarConjugation, GrammarPersonalPronouns, GrammarNominative, GrammarAccusative,
		GrammarDative, GrammarGenitive, GrammarArticles, GrammarArticleDeclension,
		GrammarSeparableVerbs, GrammarModalVerbs, GrammarPossessiveArticles,
		GrammarIndefinitePronouns, GrammarReflexivePronouns, GrammarNumerals, GrammarPlural,
		GrammarNegation, GrammarAdverbs, GrammarAdjectives, GrammarSubordinateClauses,
		GrammarRelativeClauses, GrammarInfinitiveWithZu, GrammarPerfect, GrammarPreterite,
		GrammarPluperfect, GrammarFuture, GrammarSubjunctive, GrammarPassive,
	)

	vocabularyTopics = setOf(
		VocabGreetings, VocabFarewell, VocabOrigin, VocabResidence, VocabPersonalInfo,
		VocabIdentity, VocabPlaces, VocabAge, VocabNames, VocabWorkLife, VocabDailyRoutine,
		VocabClockTime, VocabWeekdays, VocabAlphabet, VocabCountries, VocabLanguages,
		VocabProfessions, VocabFamily, VocabHobbies, VocabClothing, VocabFood, VocabGroceries,
		VocabDrinks, VocabPackaging, VocabMeasures, VocabHousehold, VocabSchoolSupplies,
		VocabRestaurant, VocabShopping, VocabFeelings, VocabWeather, VocabTravel,
		VocabLeisure, VocabLiving, VocabBody, VocabAppointments,
	)

	sociopragmaticTopics = setOf(
		PragmaDuSie, PragmaFormal, PragmaInformal, PragmaNonverbal, PragmaColloquial,
		PragmaRegionalisms, PragmaPrepositions, PragmaTimeExpressions, PragmaRestaurant,
		PragmaShopping, PragmaMaritalStatus,
	)

	correctionTopics = setOf(
		CorrectGreeting, CorrectFarewell, CorrectVerbForms, CorrectWordOrder,
		CorrectWQuestions, CorrectYesNoQuestions, CorrectClockTime, CorrectNominative,
		CorrectAccusative, CorrectSeparableVerbs, CorrectPossessives, CorrectArticles,
		CorrectPlural, CorrectNegation, CorrectModalVerbs, CorrectNumerals,
		CorrectLearnedVocabulary, CorrectCapitalization, CorrectPunctuation,
		CorrectSubordinateClauses, CorrectPerfect, CorrectPreterite, CorrectPluperfect,
		CorrectFuture, CorrectSubjunctive, CorrectPassive, CorrectArticleDeclension,
		CorrectDative, CorrectGenitive, CorrectReflexivePronouns, CorrectRelativeClauses,
		CorrectInfinitiveWithZu, CorrectUnlearnedVocabulary,
	)
)

// Valid reports whether t is in the grammar vocabulary.
func (t GrammarTopic) Valid() bool { return inSet(grammarTopics, t) }

// Valid reports whether t is in the vocabulary-topic vocabulary.
func (t VocabularyTopic) Valid() bool { return inSet(vocabularyTopics, t) }

// Valid reports whether t is in the sociopragmatic vocabulary.
func (t SociopragmaticTopic) Valid() bool { return inSet(sociopragmaticTopics, t) }

// Valid reports whether t is in the correction vocabulary.
func (t CorrectionTopic) Valid() bool { return inSet(correctionTopics, t) }

// Valid reports whether t is a known tolerance level.
func (t Tolerance) Valid() bool {
	switch t {
	case ToleranceLow, ToleranceMedium, ToleranceHigh:
		return true
	}
	return false
}

// grammarCorrections names the correction topic that covers each grammar
// topic. Topics missing here cannot be flagged on their own.
var grammarCorrections = map[GrammarTopic]CorrectionTopic{
	GrammarVerbSecond:         CorrectWordOrder,
	GrammarWQuestions:         CorrectWQuestions,
	GrammarYesNoQuestions:     CorrectYesNoQuestions,
	GrammarConjugation:        CorrectVerbForms,
	GrammarNominative:         CorrectNominative,
	GrammarAccusative:         CorrectAccusative,
	GrammarDative:             CorrectDative,
	GrammarGenitive:           CorrectGenitive,
	GrammarArticles:           CorrectArticles,
	GrammarArticleDeclension:  CorrectArticleDeclension,
	GrammarSeparableVerbs:     CorrectSeparableVerbs,
	GrammarModalVerbs:         CorrectModalVerbs,
	GrammarPossessiveArticles: CorrectPossessives,
	GrammarReflexivePronouns:  CorrectReflexivePronouns,
	GrammarNumerals:           CorrectNumerals,
	GrammarPlural:             CorrectPlural,
	GrammarNegation:           CorrectNegation,
	GrammarSubordinateClauses: CorrectSubordinateClauses,
	GrammarRelativeClauses:    CorrectRelativeClauses,
	GrammarInfinitiveWithZu:   CorrectInfinitiveWithZu,
	GrammarPerfect:            CorrectPerfect,
	GrammarPreterite:          CorrectPreterite,
	GrammarPluperfect:         CorrectPluperfect,
	GrammarFuture:             CorrectFuture,
	GrammarSubjunctive:        CorrectSubjunctive,
	GrammarPassive:            CorrectPassive,
}

// vocabularyCorrections names the correction topic that covers each
// vocabulary field with a dedicated correction entry.
var vocabularyCorrections = map[VocabularyTopic]CorrectionTopic{
	VocabGreetings: CorrectGreeting,
	VocabFarewell:  CorrectFarewell,
	VocabClockTime: CorrectClockTime,
}

// CorrectionTopicFor returns the correction topic that flags mistakes in g.
func CorrectionTopicFor(g GrammarTopic) (CorrectionTopic, bool) {
	c, ok := grammarCorrections[g.Canonical()]
	return c, ok
}

// CorrectionTopicForVocabulary returns the correction topic that flags
// mistakes in v.
func CorrectionTopicForVocabulary(v VocabularyTopic) (CorrectionTopic, bool) {
	c, ok := vocabularyCorrections[v.Canonical()]
	return c, ok
}

// Canonical returns t in NFC form.
func (t GrammarTopic) Canonical() GrammarTopic { return GrammarTopic(normalize(string(t))) }

// Canonical returns t in NFC form.
func (t VocabularyTopic) Canonical() VocabularyTopic {
	return VocabularyTopic(normalize(string(t)))
}

// Canonical returns t in NFC form.
func (t SociopragmaticTopic) Canonical() SociopragmaticTopic {
	return SociopragmaticTopic(normalize(string(t)))
}

// Canonical returns t in NFC form.
func (t CorrectionTopic) Canonical() CorrectionTopic {
	return CorrectionTopic(normalize(string(t)))
}

func setOf[T ~string](vals ...T) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[normalize(string(v))] = struct{}{}
	}
	return m
}

func inSet[T ~string](set map[string]struct{}, v T) bool {
	_, ok := set[normalize(string(v))]
	return ok
}

// normalize folds composed and decomposed umlauts onto one form.
func normalize(s string) string {
	return norm.NFC.String(s)
}

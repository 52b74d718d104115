package scope

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed weekcontext.schema.json
var schemaDoc []byte

// compiledSchema injects the closed vocabularies into the embedded document
// so the enum lists live in exactly one place (topics.go).
var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	var doc map[string]any
	if err := json.Unmarshal(schemaDoc, &doc); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	defs, ok := doc["definitions"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema has no definitions")
	}

	setEnum := func(name string, values []string) {
		defs[name] = map[string]any{"type": "string", "enum": values}
	}
	setEnum("course", stringsOf(Courses))
	setEnum("tolerance", []string{string(ToleranceLow), string(ToleranceMedium), string(ToleranceHigh)})
	setEnum("grammarTopic", keys(grammarTopics))
	setEnum("vocabularyTopic", keys(vocabularyTopics))
	setEnum("sociopragmaticTopic", keys(sociopragmaticTopics))
	setEnum("correctionTopic", keys(correctionTopics))

	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
})

// Parse decodes and validates a week context from a YAML or JSON document.
// Every structural and cross-field violation is reported in a single
// *ValidationError.
func Parse(doc []byte) (WeekContext, error) {
	return parseNamed("", doc)
}

// ParseNamed is Parse with a source name attached to any error, typically
// the file the document was read from.
func ParseNamed(source string, doc []byte) (WeekContext, error) {
	return parseNamed(source, doc)
}

// MustParse is Parse for authoring-time data. It panics with the
// *ValidationError when doc is invalid.
func MustParse(doc []byte) WeekContext {
	c, err := Parse(doc)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate runs the same checks as Parse against a Go-constructed value.
func (c WeekContext) Validate() error {
	data, err := json.Marshal(withEmptyLists(c))
	if err != nil {
		return fmt.Errorf("encode week context: %w", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode week context: %w", err)
	}
	_, err = check(c.Key().String(), normalizeTree(raw))
	return err
}

func parseNamed(source string, doc []byte) (WeekContext, error) {
	var raw any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return WeekContext{}, &ValidationError{
			Source: source,
			Issues: []Issue{{Field: "(root)", Reason: fmt.Sprintf("malformed document: %v", err)}},
		}
	}
	return check(source, normalizeTree(raw))
}

func check(source string, raw any) (WeekContext, error) {
	schema, err := compiledSchema()
	if err != nil {
		return WeekContext{}, fmt.Errorf("compile week context schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return WeekContext{}, fmt.Errorf("validate week context: %w", err)
	}

	verr := &ValidationError{Source: source}
	for _, re := range result.Errors() {
		verr.add(re.Field(), re.Description())
	}

	// Decode even when the structure is off so consistency problems are
	// reported in the same pass. A decode failure only adds one issue.
	var c WeekContext
	data, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		if result.Valid() {
			verr.add("(root)", fmt.Sprintf("cannot decode: %v", err))
		}
		return WeekContext{}, verr
	}

	checkConsistency(c, verr)

	if len(verr.Issues) > 0 {
		if verr.Source == "" && c.Course != "" {
			verr.Source = c.Key().String()
		}
		return WeekContext{}, verr
	}
	return c, nil
}

// normalizeTree converts every string in a decoded YAML tree to NFC.
func normalizeTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[normalize(k)] = normalizeTree(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeTree(val)
		}
		return out
	case string:
		return normalize(t)
	default:
		return v
	}
}

// withEmptyLists replaces nil required lists so a zero-valued Go field is
// not reported as a JSON null.
func withEmptyLists(c WeekContext) WeekContext {
	if c.Taught.Sociopragmatics == nil {
		c.Taught.Sociopragmatics = []SociopragmaticTopic{}
	}
	if c.Taught.Vocabulary.Themes == nil {
		c.Taught.Vocabulary.Themes = []VocabularyTopic{}
	}
	if c.NotTaught.Grammar == nil {
		c.NotTaught.Grammar = []GrammarTopic{}
	}
	if c.NotTaught.Sociopragmatics == nil {
		c.NotTaught.Sociopragmatics = []SociopragmaticTopic{}
	}
	if c.Correction.MayCorrect == nil {
		c.Correction.MayCorrect = []CorrectionTopic{}
	}
	if c.Correction.MustNotCorrect == nil {
		c.Correction.MustNotCorrect = []CorrectionTopic{}
	}
	return c
}

func stringsOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// fieldPath renders a JSON-schema style field path.
func fieldPath(parts ...string) string {
	return strings.Join(parts, ".")
}

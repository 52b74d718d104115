package review

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/uam-aleman/wochenkontext/internal/ai"
)

func payload(t *testing.T) InstructionPayload {
	t.Helper()
	p, err := BuildPayload(weekOne(), "Ich bin Ana", "Ana")
	if err != nil {
		t.Fatalf("BuildPayload() error = %v", err)
	}
	return p
}

func TestPrompt(t *testing.T) {
	system, user, err := Prompt(payload(t))
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if user != "Ich bin Ana" {
		t.Errorf("user = %q, want the submission verbatim", user)
	}

	for _, want := range []string{
		"Ana",
		"Nivel: A1, Woche: 1",
		"PUEDES CORREGIR: Begrüßung, Verbformen",
		"NO DEBES CORREGIR (ignora estos errores): Großschreibung",
		"máximo 3 puntos",
		"Tolerancia a errores: alta",
		"Enfoque de la semana: Verbzweistellung",
		"Vocabulario: ninguno",
	} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q:\n%s", want, system)
		}
	}
}

func TestPrompt_NoFocus(t *testing.T) {
	p := payload(t)
	p.Focus = nil
	p.Tolerance = ""

	system, _, err := Prompt(p)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if strings.Contains(system, "Enfoque de la semana") {
		t.Error("system prompt should omit the focus line")
	}
	if !strings.Contains(system, "Tolerancia a errores: media") {
		t.Error("missing tolerance falls back to media")
	}
}

func TestAIGenerator_Generate(t *testing.T) {
	mock := ai.NewMockProvider("<p>Muy bien, Ana.</p>")
	router := ai.NewRouter()
	router.Register("deepseek", mock)

	gen := NewAIGenerator(router, WithModel("deepseek-chat"))
	fb, err := gen.Generate(context.Background(), payload(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fb.Content != "<p>Muy bien, Ana.</p>" {
		t.Errorf("Content = %q", fb.Content)
	}
	if fb.Provider != "deepseek" {
		t.Errorf("Provider = %q, want deepseek", fb.Provider)
	}
	if want := 10 + len("<p>Muy bien, Ana.</p>"); fb.Tokens != want {
		t.Errorf("Tokens = %d, want %d", fb.Tokens, want)
	}

	req := mock.LastRequest()
	if req == nil {
		t.Fatal("provider was not called")
	}
	if req.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", req.Temperature, DefaultTemperature)
	}
	if req.Model != "deepseek-chat" {
		t.Errorf("Model = %q, want deepseek-chat", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != ai.RoleSystem || req.Messages[1].Content != "Ich bin Ana" {
		t.Errorf("Messages = %+v", req.Messages)
	}
}

func TestAIGenerator_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mock   *ai.MockProvider
		target error
	}{
		{"provider error", &ai.MockProvider{Err: errors.New("down")}, nil},
		{"empty content", ai.NewMockProvider("   "), ErrEmptyFeedback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewAIGenerator(tt.mock)
			_, err := gen.Generate(context.Background(), payload(t))
			if err == nil {
				t.Fatal("Generate() should fail")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Generate() error = %v, want %v", err, tt.target)
			}
		})
	}
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	err     error
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", false, c.err
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.entries == nil {
		c.entries = make(map[string]string)
	}
	c.entries[key] = value
	return nil
}

func TestCachedGenerator(t *testing.T) {
	mock := ai.NewMockProvider("<p>ok</p>")
	cache := &memoryCache{}
	gen := NewCachedGenerator(NewAIGenerator(mock), cache)
	p := payload(t)

	first, err := gen.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if first.Cached {
		t.Error("first Generate() should not be cached")
	}

	second, err := gen.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !second.Cached || second.Content != "<p>ok</p>" {
		t.Errorf("second Generate() = %+v, want cached content", second)
	}
	if second.Model != "mock" || second.Tokens != 0 {
		t.Errorf("cached Model = %q, Tokens = %d, want mock and 0", second.Model, second.Tokens)
	}
	if mock.Calls() != 1 {
		t.Errorf("provider calls = %d, want 1", mock.Calls())
	}

	p.SubmissionText = "anders"
	if _, err := gen.Generate(context.Background(), p); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if mock.Calls() != 2 {
		t.Errorf("provider calls = %d, want 2 for a different text", mock.Calls())
	}
}

func TestCachedGenerator_UndecodableEntry(t *testing.T) {
	mock := ai.NewMockProvider("<p>neu</p>")
	p := payload(t)
	cache := &memoryCache{entries: map[string]string{PayloadDigest(p): "<p>alt</p>"}}
	gen := NewCachedGenerator(NewAIGenerator(mock), cache)

	fb, err := gen.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fb.Cached || fb.Content != "<p>neu</p>" {
		t.Errorf("Generate() = %+v, want fresh feedback", fb)
	}
	if !strings.Contains(cache.entries[PayloadDigest(p)], `"model":"mock"`) {
		t.Errorf("cache entry = %q, want encoded feedback", cache.entries[PayloadDigest(p)])
	}
}

func TestCachedGenerator_CacheFailureIsNotFatal(t *testing.T) {
	mock := ai.NewMockProvider("<p>ok</p>")
	gen := NewCachedGenerator(NewAIGenerator(mock), &memoryCache{err: errors.New("cache down")})

	fb, err := gen.Generate(context.Background(), payload(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fb.Content != "<p>ok</p>" {
		t.Errorf("Content = %q", fb.Content)
	}
}

func TestPayloadDigest(t *testing.T) {
	p := payload(t)
	d := PayloadDigest(p)
	if len(d) != 64 {
		t.Errorf("len(digest) = %d, want 64", len(d))
	}

	p.StudentName = "Bea"
	if PayloadDigest(p) == d {
		t.Error("digest should change with the payload")
	}
}

func TestPendingGenerator(t *testing.T) {
	var gen FeedbackGenerator = PendingGenerator{}
	fb, err := gen.Generate(context.Background(), payload(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(fb.Content, "Feedback preliminar para Ana:") {
		t.Errorf("Content = %q", fb.Content)
	}
	if fb.Model != "pending" {
		t.Errorf("Model = %q, want pending", fb.Model)
	}
}

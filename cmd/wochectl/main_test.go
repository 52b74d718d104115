package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/review"
	"github.com/uam-aleman/wochenkontext/internal/scope"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCourses(t *testing.T) {
	out, err := run(t, "courses")
	if err != nil {
		t.Fatalf("courses error = %v", err)
	}
	for _, want := range []string{"A1", "aleman1", "Alemán 2: Intermedio", "1,2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWeeks(t *testing.T) {
	out, err := run(t, "weeks", "aleman2")
	if err != nil {
		t.Fatalf("weeks error = %v", err)
	}
	active := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) >= 2 {
			active[f[0]] = f[1]
		}
	}
	if active["w02"] != "yes" {
		t.Errorf("week 2 should be active:\n%s", out)
	}
	if active["w03"] != "-" {
		t.Errorf("week 3 should be inactive:\n%s", out)
	}

	if _, err := run(t, "weeks", "latin"); err == nil {
		t.Error("weeks with an unknown course should fail")
	}
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "A1", "w01")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}

	if !strings.HasPrefix(out, "# source: a1-w01.yaml\n") {
		t.Errorf("show output should name its source file:\n%s", out)
	}

	c, err := scope.Parse([]byte(out))
	if err != nil {
		t.Fatalf("show output does not parse back: %v\n%s", err, out)
	}
	if c.Key() != (scope.Key{Course: scope.CourseA1, Week: 1}) {
		t.Errorf("Key() = %v, want A1/w01", c.Key())
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["correction"]; !ok {
		t.Error("show output has no correction section")
	}
}

func TestShow_Errors(t *testing.T) {
	tests := []struct {
		args   []string
		target error
	}{
		{[]string{"show", "A1", "w09"}, curriculum.ErrWeekNotImplemented},
		{[]string{"show", "B2", "w01"}, curriculum.ErrUnknownCourse},
		{[]string{"show", "A1", "w99"}, curriculum.ErrWeekOutOfRange},
		{[]string{"show", "A1", "first"}, curriculum.ErrInvalidWeek},
	}
	for _, tt := range tests {
		_, err := run(t, tt.args...)
		if !errors.Is(err, tt.target) {
			t.Errorf("%v error = %v, want %v", tt.args, err, tt.target)
		}
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")

	goodData, err := run(t, "show", "A2", "1")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, []byte(goodData), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("course: A3\nweek: 1\ntitle: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "validate", good)
	if err != nil {
		t.Fatalf("validate good error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok   "+good+" (A2/w01)") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "validate", good, bad, filepath.Join(dir, "missing.yaml"))
	if err == nil {
		t.Fatal("validate should fail with invalid files")
	}
	if err.Error() != "2 of 3 files invalid" {
		t.Errorf("error = %q", err)
	}
	if !strings.Contains(out, "FAIL "+bad) || !strings.Contains(out, "course") {
		t.Errorf("output should list the course issue:\n%s", out)
	}
}

func TestPayload(t *testing.T) {
	out, err := run(t, "payload", "aleman1", "w01", "--name", "Ana", "--text", "Ich heiße Ana.")
	if err != nil {
		t.Fatalf("payload error = %v", err)
	}

	var p review.InstructionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, out)
	}
	if p.Course != scope.CourseA1 || p.Week != 1 {
		t.Errorf("payload key = %s/%d", p.Course, p.Week)
	}
	if p.StudentName != "Ana" || p.SubmissionText != "Ich heiße Ana." {
		t.Errorf("payload = %+v", p)
	}
	if p.MaxIssues != 3 {
		t.Errorf("MaxIssues = %d, want 3", p.MaxIssues)
	}
}

func TestPayload_Prompt(t *testing.T) {
	out, err := run(t, "payload", "A1", "1", "--name", "Ana", "--text", "Hallo", "--prompt")
	if err != nil {
		t.Fatalf("payload --prompt error = %v", err)
	}
	if !strings.Contains(out, "PUEDES CORREGIR") {
		t.Errorf("prompt output:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.xlsx")
	out, err := run(t, "export", "--out", path)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Errorf("output = %q", out)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "A1" || got[1] != "A2" {
		t.Errorf("sheets = %v, want [A1 A2]", got)
	}

	rows, err := f.GetRows("A1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 weeks", len(rows))
	}
	if rows[0][0] != "Woche" || rows[1][1] != "w01" || rows[2][1] != "w02" {
		t.Errorf("rows = %v", rows)
	}
	if rows[0][3] != "Schwerpunkt" || rows[0][4] != "Fokus" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][7] != "3" {
		t.Errorf("max issues cell = %q, want 3", rows[1][7])
	}
	if !strings.HasPrefix(rows[2][4], "Korrekte Verwendung von W-Fragen; ") {
		t.Errorf("focus cell = %q, want the correction focus of week 2", rows[2][4])
	}
}

func TestCustomCurriculumDir(t *testing.T) {
	dir := t.TempDir()
	data, err := run(t, "show", "A1", "w02")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "only.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--curriculum", dir, "courses")
	if err != nil {
		t.Fatalf("courses error = %v", err)
	}
	if strings.Contains(out, "A2") {
		t.Errorf("custom curriculum should only contain A1:\n%s", out)
	}
}

func TestOpsCommands_RequireConfig(t *testing.T) {
	t.Setenv("ALEMAN_CONFIG_PATH", "")
	t.Setenv("ALEMAN_DATABASE_URL", "")
	t.Setenv("ALEMAN_CACHE_URL", "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"submissions"}, "ALEMAN_DATABASE_URL is not set"},
		{[]string{"cache", "flush"}, "ALEMAN_CACHE_URL is not set"},
	}
	for _, tt := range tests {
		_, err := run(t, tt.args...)
		if err == nil || err.Error() != tt.want {
			t.Errorf("%v error = %v, want %q", tt.args, err, tt.want)
		}
	}
}

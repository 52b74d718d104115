package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/submission"
)

const maxBodyBytes = 64 << 10

type server struct {
	registry    *curriculum.Registry
	submissions *submission.Service
	checks      map[string]func(context.Context) error
}

type courseInfo struct {
	Course  string `json:"course"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Weeks   []int  `json:"weeks"`
	MaxWeek int    `json:"maxWeek"`
}

// newMux creates the HTTP router.
func newMux(s *server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /api/courses", s.handleCourses)
	mux.HandleFunc("GET /api/courses/{course}/weeks", s.handleWeeks)
	mux.HandleFunc("GET /api/courses/{course}/weeks/{week}", s.handleWeek)
	mux.HandleFunc("GET /api/courses/{course}/roadmap", s.handleRoadmap)
	mux.HandleFunc("POST /api/submit", s.handleSubmit)
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := map[string]any{"status": "ready"}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	if len(results) > 0 {
		body["checks"] = results
	}
	writeJSON(w, status, body)
}

func (s *server) handleCourses(w http.ResponseWriter, r *http.Request) {
	courses := []courseInfo{}
	for _, level := range s.registry.ListCourses() {
		info := courseInfo{
			Course:  string(level),
			Slug:    curriculum.CourseSlug(level),
			Weeks:   s.registry.ListWeeks(string(level)),
			MaxWeek: s.registry.MaxWeek(),
		}
		if rm, ok := s.registry.Roadmap(string(level)); ok {
			info.Title = rm.Title
		}
		courses = append(courses, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (s *server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	course := r.PathValue("course")
	level, ok := curriculum.NormalizeCourse(course)
	if !ok {
		writeError(w, http.StatusNotFound, "curso desconocido")
		return
	}

	weeks := []curriculum.Summary{}
	for _, week := range s.registry.ListWeeks(course) {
		if sum, ok := s.registry.Summarize(course, week); ok {
			weeks = append(weeks, sum)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"course": level, "weeks": weeks})
}

func (s *server) handleWeek(w http.ResponseWriter, r *http.Request) {
	week, err := curriculum.ParseWeek(r.PathValue("week"))
	if err != nil {
		writeError(w, http.StatusNotFound, "semana no encontrada")
		return
	}
	sum, ok := s.registry.Summarize(r.PathValue("course"), week)
	if !ok {
		writeError(w, http.StatusNotFound, "semana no encontrada")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.registry.Roadmap(r.PathValue("course"))
	if !ok {
		writeError(w, http.StatusNotFound, "curso desconocido")
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in submission.Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	res, err := s.submissions.Submit(r.Context(), in)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// writeSubmitError maps submission failures onto HTTP statuses.
func writeSubmitError(w http.ResponseWriter, err error) {
	var ie *submission.InputError
	var ce *curriculum.ConfigurationError
	switch {
	case errors.As(err, &ie):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Datos inválidos",
			"details": ie.Fields,
		})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": ce.Error(),
			"kind":  ce.Kind.String(),
		})
	default:
		slog.Error("submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

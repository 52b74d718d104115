package review

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/uam-aleman/wochenkontext/internal/scope"
)

var promptFuncs = template.FuncMap{
	"join": func(items any) string {
		switch v := items.(type) {
		case []string:
			return orNone(v)
		case []scope.CorrectionTopic:
			return orNone(toStrings(v))
		case []scope.GrammarTopic:
			return orNone(toStrings(v))
		case []scope.VocabularyTopic:
			return orNone(toStrings(v))
		case []scope.SociopragmaticTopic:
			return orNone(toStrings(v))
		}
		return fmt.Sprint(items)
	},
	"tolerance": func(t scope.Tolerance) string {
		switch t {
		case scope.ToleranceLow:
			return "baja"
		case scope.ToleranceHigh:
			return "alta"
		}
		return "media"
	},
	"yesno": func(b bool) string {
		if b {
			return "sí"
		}
		return "no"
	},
}

var systemPrompt = template.Must(template.New("system").Funcs(promptFuncs).Parse(
	`Actúa como profesor nativo de alemán para {{.StudentName}}, estudiante hispanohablante.
Nivel: {{.Course}}, Woche: {{.Week}}
Título de la lección: {{.Title}}

EN CLASE SE HA VISTO (GELERNT):
- Gramática: {{join .Taught.Grammar}}
- Vocabulario: {{join .Taught.Vocabulary}}
- Pragmática: {{join .Taught.Sociopragmatics}}

LO QUE EL ESTUDIANTE AÚN NO HA VISTO (NICHT GELERNT):
- Gramática: {{join .NotTaught.Grammar}}
- Vocabulario: {{join .NotTaught.Vocabulary}}
- Pragmática: {{join .NotTaught.Sociopragmatics}}

INSTRUCCIONES DE CORRECCIÓN:
- PUEDES CORREGIR: {{join .Correctable}}
- NO DEBES CORREGIR (ignora estos errores): {{join .Forbidden}}
{{- if .Focus}}
- Enfoque de la semana: {{join .Focus}}
{{- end}}
- Tolerancia a errores: {{tolerance .Tolerance}}

REGLAS DE SALIDA:
- Cantidad de errores: máximo {{.MaxIssues}} puntos de corrección.
- Evitar sobrecorrección: {{yesno .AvoidOverCorrection}}.
- Tono: formativo, empático y motivador (no punitivo).
- Idioma del feedback: explicaciones en español con ejemplos claros en alemán.
- Formato técnico: HTML simple (usar solo <p>, <ul>, <li>, <strong>). Sin markdown ni emojis.

Estructura:
1. Texto corregido completo.
2. Explicación breve de los errores.
3. Comentario motivador final.

Si el texto es correcto, indícalo claramente y felicita de forma breve.
El mensaje del usuario es el texto del estudiante, tal cual fue entregado.`))

// Prompt renders the chat messages for p: a system message carrying the
// scope rules and a user message carrying the submission verbatim.
func Prompt(p InstructionPayload) (system, user string, err error) {
	var b strings.Builder
	if err := systemPrompt.Execute(&b, p); err != nil {
		return "", "", fmt.Errorf("render review prompt: %w", err)
	}
	return b.String(), p.SubmissionText, nil
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "ninguno"
	}
	return strings.Join(items, ", ")
}

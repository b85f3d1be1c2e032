package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionnaireFieldCount is the fixed shape of the intake form.
const QuestionnaireFieldCount = 18

// QuestionnaireSubmission is one verbatim questionnaire response. The JSON
// field names match the form the intake client posts; FechaEnvio is assigned
// by the server at save time.
type QuestionnaireSubmission struct {
	ID         uuid.UUID `json:"id"`
	Pregunta1  string    `json:"pregunta1"`
	Pregunta2  string    `json:"pregunta2"`
	Pregunta3  string    `json:"pregunta3"`
	Pregunta4  string    `json:"pregunta4"`
	Pregunta5  string    `json:"pregunta5"`
	Pregunta6  string    `json:"pregunta6"`
	Pregunta7  string    `json:"pregunta7"`
	Pregunta8  string    `json:"pregunta8"`
	Pregunta9  string    `json:"pregunta9"`
	Pregunta10 string    `json:"pregunta10"`
	Pregunta11 string    `json:"pregunta11"`
	Pregunta12 string    `json:"pregunta12"`
	Pregunta13 string    `json:"pregunta13"`
	Pregunta14 string    `json:"pregunta14"`
	Pregunta15 string    `json:"pregunta15"`
	Pregunta16 string    `json:"pregunta16"`
	Pregunta17 string    `json:"pregunta17"`
	Pregunta18 string    `json:"pregunta18"`
	FechaEnvio time.Time `json:"fechaEnvio"`
}

// Answers returns the 18 answers in form order, for presence reporting and
// column binding.
func (q *QuestionnaireSubmission) Answers() [QuestionnaireFieldCount]string {
	return [QuestionnaireFieldCount]string{
		q.Pregunta1, q.Pregunta2, q.Pregunta3, q.Pregunta4, q.Pregunta5,
		q.Pregunta6, q.Pregunta7, q.Pregunta8, q.Pregunta9, q.Pregunta10,
		q.Pregunta11, q.Pregunta12, q.Pregunta13, q.Pregunta14, q.Pregunta15,
		q.Pregunta16, q.Pregunta17, q.Pregunta18,
	}
}

type SubmitResponse struct {
	Mensaje            string    `json:"mensaje"`
	ID                 uuid.UUID `json:"id"`
	PreguntasGuardadas int       `json:"preguntasGuardadas"`
	TotalPreguntas     int       `json:"totalPreguntas"`
}

type StatsResponse struct {
	TotalRespuestas int        `json:"totalRespuestas"`
	UltimaRespuesta *time.Time `json:"ultimaRespuesta"`
}

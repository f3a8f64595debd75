package services

import (
	"errors"
	"testing"

	"github.com/dparra0/alerta-escolar-server/apperr"
	"github.com/dparra0/alerta-escolar-server/models"
)

func TestSubmitPromotesPendingInPlace(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")

	survey, err := NewSurveyService(db).Create("Convivencia", basicQuestions())
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}

	var pending models.SurveyResponse
	if err := db.Where("survey_id = ? AND user_id = ?", survey.ID, ana.ID).First(&pending).Error; err != nil {
		t.Fatalf("no hay fila PENDING pre-aprovisionada: %v", err)
	}

	answers := models.AnswerList{{Question: 1, Answer: "No"}}
	got, err := NewResponseService(db).Submit(survey.ID, ana.ID, answers)
	if err != nil {
		t.Fatalf("Submit falló: %v", err)
	}

	// La fila PENDING se muta en el sitio, no se reemplaza.
	if got.ID != pending.ID {
		t.Fatalf("se creó una fila nueva (%d) en vez de promover la %d", got.ID, pending.ID)
	}
	if got.Status != models.ResponseCompleted {
		t.Fatalf("estado tras enviar: %s", got.Status)
	}
	if len(got.Answers) != 1 || got.Answers[0].Question != 1 {
		t.Fatalf("respuestas no guardadas: %+v", got.Answers)
	}
	if n := countResponses(t, db, "survey_id = ? AND user_id = ?", survey.ID, ana.ID); n != 1 {
		t.Fatalf("esperaba exactamente 1 fila para el par, hay %d", n)
	}
}

func TestSubmitWithoutPendingCreatesCompleted(t *testing.T) {
	db := newTestDB(t)
	survey, err := NewSurveyService(db).Create("Convivencia", basicQuestions())
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}

	// Usuario registrado después del fan-out: no tiene fila PENDING.
	tarde := registerUser(t, db, "tarde@colegio.edu.co")

	got, err := NewResponseService(db).Submit(survey.ID, tarde.ID, models.AnswerList{{Question: 1, Answer: "Sí"}})
	if err != nil {
		t.Fatalf("Submit falló: %v", err)
	}
	if got.Status != models.ResponseCompleted {
		t.Fatalf("estado: %s", got.Status)
	}
	if n := countResponses(t, db, "survey_id = ? AND user_id = ?", survey.ID, tarde.ID); n != 1 {
		t.Fatalf("esperaba 1 fila COMPLETED directa, hay %d", n)
	}
}

func TestSubmitIsNotIdempotent(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")
	survey, err := NewSurveyService(db).Create("Convivencia", basicQuestions())
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}

	svc := NewResponseService(db)
	answers := models.AnswerList{{Question: 1, Answer: "Sí"}}
	if _, err := svc.Submit(survey.ID, ana.ID, answers); err != nil {
		t.Fatalf("primer Submit falló: %v", err)
	}
	// Consumida la PENDING, cada reenvío agrega una fila COMPLETED más.
	if _, err := svc.Submit(survey.ID, ana.ID, answers); err != nil {
		t.Fatalf("segundo Submit falló: %v", err)
	}

	if n := countResponses(t, db, "survey_id = ? AND user_id = ? AND status = ?",
		survey.ID, ana.ID, models.ResponseCompleted); n != 2 {
		t.Fatalf("esperaba 2 filas COMPLETED tras reenviar, hay %d", n)
	}
}

func TestSubmitUnknownSurvey(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")

	_, err := NewResponseService(db).Submit(42, ana.ID, nil)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "Encuesta" {
		t.Fatalf("esperaba NotFoundError de Encuesta, obtuve %v", err)
	}
}

func TestResponseListings(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")
	bruno := registerUser(t, db, "bruno@colegio.edu.co")

	surveySvc := NewSurveyService(db)
	s1, err := surveySvc.Create("Primera", basicQuestions())
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}
	s2, err := surveySvc.Create("Segunda", basicQuestions())
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}

	svc := NewResponseService(db)

	forAna, err := svc.ListForUser(ana.ID)
	if err != nil {
		t.Fatalf("ListForUser falló: %v", err)
	}
	if len(forAna) != 2 {
		t.Fatalf("Ana debía tener 2 filas (una por encuesta), tiene %d", len(forAna))
	}

	forS1, err := svc.ListForSurvey(s1.ID)
	if err != nil {
		t.Fatalf("ListForSurvey falló: %v", err)
	}
	if len(forS1) != 2 {
		t.Fatalf("la encuesta 1 debía tener 2 filas (una por usuario), tiene %d", len(forS1))
	}

	pair, err := svc.ListForSurveyAndUser(s2.ID, bruno.ID)
	if err != nil {
		t.Fatalf("ListForSurveyAndUser falló: %v", err)
	}
	if len(pair) != 1 || pair[0].UserID != bruno.ID || pair[0].SurveyID != s2.ID {
		t.Fatalf("filtro por par incorrecto: %+v", pair)
	}
}

func TestUpdateResponseStatusValidation(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")
	survey, err := NewSurveyService(db).Create("Convivencia", basicQuestions())
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}

	svc := NewResponseService(db)
	rows, err := svc.ListForSurveyAndUser(survey.ID, ana.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("fila PENDING no encontrada: %v", err)
	}

	bad := "ARCHIVED"
	if _, err := svc.Update(rows[0].ID, UpdateResponseInput{Status: &bad}); !apperr.IsValidation(err) {
		t.Fatalf("esperaba ValidationError por estado desconocido, obtuve %v", err)
	}
}

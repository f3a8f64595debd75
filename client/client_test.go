package client

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dparra0/alerta-escolar-server/config"
	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/routes"
	"github.com/dparra0/alerta-escolar-server/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "secreto-de-prueba")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("no se pudo migrar el esquema: %v", err)
	}

	r := gin.New()
	routes.SetupRoutes(r, db)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFlow(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	auth, err := c.Register(services.RegisterInput{
		Name: "Ana María", Email: "ana@colegio.edu.co", Password: "secreto123", Grade: "7B",
	})
	if err != nil {
		t.Fatalf("Register falló: %v", err)
	}
	if auth.Token == "" || c.Token != auth.Token {
		t.Fatal("Register no dejó el token en el cliente")
	}

	me, err := c.Me()
	if err != nil || me.Email != "ana@colegio.edu.co" {
		t.Fatalf("Me: %+v err=%v", me, err)
	}

	survey, err := c.CreateSurvey("Convivencia", []services.QuestionInput{
		{Question: "¿Has presenciado acoso?", Type: models.QuestionSingleChoice, Options: []string{"Sí", "No"}},
	})
	if err != nil {
		t.Fatalf("CreateSurvey falló: %v", err)
	}

	listed, err := c.Surveys()
	if err != nil {
		t.Fatalf("Surveys falló: %v", err)
	}
	if len(listed) != 1 || !listed[0].IsPending {
		t.Fatalf("esperaba 1 encuesta pendiente: %+v", listed)
	}

	resp, err := c.SubmitResponse(survey.ID, models.AnswerList{{Question: 1, Answer: "Sí"}})
	if err != nil {
		t.Fatalf("SubmitResponse falló: %v", err)
	}
	if resp.Status != models.ResponseCompleted || resp.UserID != auth.User.ID {
		t.Fatalf("respuesta inesperada: %+v", resp)
	}

	annotated, err := c.Survey(survey.ID)
	if err != nil || !annotated.IsCompleted {
		t.Fatalf("tras enviar esperaba isCompleted=true: %+v err=%v", annotated, err)
	}

	mine, err := c.MyResponses()
	if err != nil || len(mine) != 1 {
		t.Fatalf("MyResponses: %d filas, err=%v", len(mine), err)
	}

	alert, err := c.CreatePanicAlert(4.65, -74.05, auth.User.ID)
	if err != nil {
		t.Fatalf("CreatePanicAlert falló: %v", err)
	}
	if alert.Latitude != 4.65 || alert.Longitude != -74.05 || alert.Timestamp.IsZero() {
		t.Fatalf("alerta incompleta: %+v", alert)
	}
}

func TestClientAPIErrorClassification(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	// Sin token: 401.
	_, err := c.Surveys()
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("esperaba APIError 401, obtuve %v", err)
	}

	// Encuesta inexistente: 404 con mensaje del servidor.
	if _, err = c.Register(services.RegisterInput{
		Name: "Ana María", Email: "ana@colegio.edu.co", Password: "secreto123", Grade: "7B",
	}); err != nil {
		t.Fatalf("Register falló: %v", err)
	}
	_, err = c.Survey(999)
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Fatalf("esperaba APIError 404, obtuve %v", err)
	}
	if apiErr.Message == "" {
		t.Fatal("el APIError no trae el mensaje del servidor")
	}
}

func TestClientConnectionError(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)
	srv.Close()

	_, err := c.Surveys()
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("esperaba ConnectionError con el servidor caído, obtuve %v", err)
	}
}

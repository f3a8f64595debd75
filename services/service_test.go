package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dparra0/alerta-escolar-server/config"
	"github.com/dparra0/alerta-escolar-server/models"
)

// newTestDB abre una base sqlite en memoria con el esquema migrado. El
// nombre único evita que dos pruebas compartan estado.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "secreto-de-prueba")

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
	return db
}

func registerUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	svc := NewAuthService(db)
	user, _, err := svc.Register(RegisterInput{
		Name:     "Estudiante Prueba",
		Email:    email,
		Password: "secreto123",
		Grade:    "7B",
	})
	if err != nil {
		t.Fatalf("no se pudo registrar %s: %v", email, err)
	}
	return user
}

func basicQuestions() []QuestionInput {
	return []QuestionInput{
		{Question: "¿Has presenciado acoso en tu colegio?", Type: models.QuestionSingleChoice, Options: []string{"Sí", "No"}},
		{Question: "Describe la situación", Type: models.QuestionText},
	}
}

func countResponses(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.SurveyResponse{}).Where(where, args...).Count(&count).Error; err != nil {
		t.Fatalf("no se pudo contar respuestas: %v", err)
	}
	return count
}

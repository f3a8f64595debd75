package config

import (
	"errors"
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/models"
)

// Config reúne lo que el servidor lee del entorno al arrancar. Las
// credenciales de base de datos no tienen valores por defecto; el secreto
// JWT tampoco: sin JWT_SECRET el servidor no arranca.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	Port       string
}

func Load() (*Config, error) {
	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		Port:       os.Getenv("PORT"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, errors.New("faltan variables de base de datos (DB_HOST, DB_PORT, DB_USER, DB_NAME)")
	}
	if os.Getenv("JWT_SECRET") == "" {
		return nil, errors.New("JWT_SECRET no está configurado")
	}
	return cfg, nil
}

// ConnectDB abre la conexión PostgreSQL y migra las tablas.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=America/Bogota",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate crea o actualiza el esquema; lo usan también las pruebas sobre
// sqlite en memoria.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.SurveyResponse{},
		&models.PanicAlert{},
	); err != nil {
		return fmt.Errorf("no se pudo migrar el esquema: %w", err)
	}
	return nil
}

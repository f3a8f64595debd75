package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/apperr"
	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/repository"
)

type CreateAlertInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	UserID    uint    `json:"userId"`
}

type UpdateAlertInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type AlertService struct {
	alerts repository.AlertRepository
	users  repository.UserRepository
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{
		alerts: repository.NewAlertRepository(db),
		users:  repository.NewUserRepository(db),
	}
}

func validateCoordinates(lat, lng float64) error {
	verr := &apperr.ValidationError{}
	if lat < -90 || lat > 90 {
		verr.Add("latitude", "debe estar entre -90 y 90")
	}
	if lng < -180 || lng > 180 {
		verr.Add("longitude", "debe estar entre -180 y 180")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Create persiste una alerta por pulsación del botón de pánico. Sin
// deduplicación ni límite de frecuencia: cada pulsación cuenta.
func (s *AlertService) Create(in CreateAlertInput) (*models.PanicAlert, error) {
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Usuario", in.UserID)
		}
		return nil, err
	}

	alert := models.PanicAlert{
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		UserID:    in.UserID,
	}
	if err := s.alerts.Create(&alert); err != nil {
		return nil, err
	}
	// Recarga con la relación de usuario; la app la muestra en la alerta.
	return s.Get(alert.ID)
}

func (s *AlertService) Get(id uint) (*models.PanicAlert, error) {
	alert, err := s.alerts.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Alerta", id)
		}
		return nil, err
	}
	return alert, nil
}

func (s *AlertService) List() ([]models.PanicAlert, error) {
	return s.alerts.List()
}

func (s *AlertService) ListForUser(userID uint) ([]models.PanicAlert, error) {
	return s.alerts.ListByUser(userID)
}

func (s *AlertService) Update(id uint, in UpdateAlertInput) (*models.PanicAlert, error) {
	alert, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	lat, lng := alert.Latitude, alert.Longitude
	if in.Latitude != nil {
		lat = *in.Latitude
	}
	if in.Longitude != nil {
		lng = *in.Longitude
	}
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	alert.Latitude = lat
	alert.Longitude = lng
	if err := s.alerts.Update(alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *AlertService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.alerts.Delete(id)
}

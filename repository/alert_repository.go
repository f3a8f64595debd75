package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/models"
)

type AlertRepository interface {
	Create(a *models.PanicAlert) error
	// FindByID carga también la relación con el usuario; la app móvil la
	// muestra junto a la alerta.
	FindByID(id uint) (*models.PanicAlert, error)
	List() ([]models.PanicAlert, error)
	ListByUser(userID uint) ([]models.PanicAlert, error)
	Update(a *models.PanicAlert) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) AlertRepository
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) WithTx(tx *gorm.DB) AlertRepository {
	return &alertRepository{db: tx}
}

func (r *alertRepository) Create(a *models.PanicAlert) error {
	return r.db.Create(a).Error
}

func (r *alertRepository) FindByID(id uint) (*models.PanicAlert, error) {
	var a models.PanicAlert
	if err := r.db.Preload("User").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *alertRepository) List() ([]models.PanicAlert, error) {
	var out []models.PanicAlert
	err := r.db.Preload("User").Order("timestamp DESC").Find(&out).Error
	return out, err
}

func (r *alertRepository) ListByUser(userID uint) ([]models.PanicAlert, error) {
	var out []models.PanicAlert
	err := r.db.Preload("User").Where("user_id = ?", userID).
		Order("timestamp DESC").Find(&out).Error
	return out, err
}

func (r *alertRepository) Update(a *models.PanicAlert) error {
	return r.db.Save(a).Error
}

func (r *alertRepository) Delete(id uint) error {
	return r.db.Delete(&models.PanicAlert{}, id).Error
}

package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/models"
)

type SurveyRepository interface {
	Create(s *models.Survey) error
	FindByID(id uint) (*models.Survey, error)
	List() ([]models.Survey, error)
	Update(s *models.Survey) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) SurveyRepository
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) WithTx(tx *gorm.DB) SurveyRepository {
	return &surveyRepository{db: tx}
}

func (r *surveyRepository) Create(s *models.Survey) error {
	return r.db.Create(s).Error
}

func (r *surveyRepository) FindByID(id uint) (*models.Survey, error) {
	var s models.Survey
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *surveyRepository) List() ([]models.Survey, error) {
	var out []models.Survey
	if err := r.db.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *surveyRepository) Update(s *models.Survey) error {
	return r.db.Save(s).Error
}

func (r *surveyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Survey{}, id).Error
}

package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/models"
)

type ResponseRepository interface {
	Create(resp *models.SurveyResponse) error
	CreateBatch(resps []models.SurveyResponse) error
	FindByID(id uint) (*models.SurveyResponse, error)
	// FindPending devuelve la fila PENDING del par (survey, user), o
	// ErrNotFound si ya fue consumida o nunca existió.
	FindPending(surveyID, userID uint) (*models.SurveyResponse, error)
	ListBySurvey(surveyID uint) ([]models.SurveyResponse, error)
	ListByUser(userID uint) ([]models.SurveyResponse, error)
	ListBySurveyAndUser(surveyID, userID uint) ([]models.SurveyResponse, error)
	Update(resp *models.SurveyResponse) error
	Delete(id uint) error
	DeleteBySurvey(surveyID uint) error
	WithTx(tx *gorm.DB) ResponseRepository
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) WithTx(tx *gorm.DB) ResponseRepository {
	return &responseRepository{db: tx}
}

func (r *responseRepository) Create(resp *models.SurveyResponse) error {
	return r.db.Create(resp).Error
}

// CreateBatch inserta el fan-out en una sola sentencia por lote para no
// pagar un round trip por usuario.
func (r *responseRepository) CreateBatch(resps []models.SurveyResponse) error {
	if len(resps) == 0 {
		return nil
	}
	return r.db.CreateInBatches(resps, 200).Error
}

func (r *responseRepository) FindByID(id uint) (*models.SurveyResponse, error) {
	var resp models.SurveyResponse
	if err := r.db.First(&resp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) FindPending(surveyID, userID uint) (*models.SurveyResponse, error) {
	var resp models.SurveyResponse
	err := r.db.
		Where("survey_id = ? AND user_id = ? AND status = ?", surveyID, userID, models.ResponsePending).
		Order("id ASC").
		First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) ListBySurvey(surveyID uint) ([]models.SurveyResponse, error) {
	var out []models.SurveyResponse
	err := r.db.Where("survey_id = ?", surveyID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *responseRepository) ListByUser(userID uint) ([]models.SurveyResponse, error) {
	var out []models.SurveyResponse
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *responseRepository) ListBySurveyAndUser(surveyID, userID uint) ([]models.SurveyResponse, error) {
	var out []models.SurveyResponse
	err := r.db.Where("survey_id = ? AND user_id = ?", surveyID, userID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *responseRepository) Update(resp *models.SurveyResponse) error {
	return r.db.Save(resp).Error
}

func (r *responseRepository) Delete(id uint) error {
	return r.db.Delete(&models.SurveyResponse{}, id).Error
}

func (r *responseRepository) DeleteBySurvey(surveyID uint) error {
	return r.db.Where("survey_id = ?", surveyID).Delete(&models.SurveyResponse{}).Error
}

package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/apperr"
	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/repository"
)

type UpdateResponseInput struct {
	Answers *models.AnswerList `json:"answers"`
	Status  *string            `json:"status"`
}

type ResponseService struct {
	db        *gorm.DB
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
}

func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{
		db:        db,
		surveys:   repository.NewSurveyRepository(db),
		responses: repository.NewResponseRepository(db),
	}
}

// Submit consume la fila PENDING del par (survey, user): sobrescribe sus
// respuestas y la promueve a COMPLETED en el sitio. Si no hay fila PENDING
// (usuario registrado después de crear la encuesta, o reenvío), crea una
// nueva directamente COMPLETED; no es un error. La operación no es
// idempotente: reenviar tras completar deja una segunda fila COMPLETED.
func (s *ResponseService) Submit(surveyID, userID uint, answers models.AnswerList) (*models.SurveyResponse, error) {
	if _, err := s.surveys.FindByID(surveyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Encuesta", surveyID)
		}
		return nil, err
	}
	if answers == nil {
		answers = models.AnswerList{}
	}

	var result *models.SurveyResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.responses.WithTx(tx)

		pending, err := repo.FindPending(surveyID, userID)
		switch {
		case err == nil:
			pending.Answers = answers
			pending.Status = models.ResponseCompleted
			if err := repo.Update(pending); err != nil {
				return err
			}
			result = pending
		case errors.Is(err, repository.ErrNotFound):
			created := models.SurveyResponse{
				SurveyID: surveyID,
				UserID:   userID,
				Answers:  answers,
				Status:   models.ResponseCompleted,
			}
			if err := repo.Create(&created); err != nil {
				return err
			}
			result = &created
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ResponseService) Get(id uint) (*models.SurveyResponse, error) {
	resp, err := s.responses.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Respuesta", id)
		}
		return nil, err
	}
	return resp, nil
}

func (s *ResponseService) ListForUser(userID uint) ([]models.SurveyResponse, error) {
	return s.responses.ListByUser(userID)
}

func (s *ResponseService) ListForSurvey(surveyID uint) ([]models.SurveyResponse, error) {
	if _, err := s.surveys.FindByID(surveyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Encuesta", surveyID)
		}
		return nil, err
	}
	return s.responses.ListBySurvey(surveyID)
}

func (s *ResponseService) ListForSurveyAndUser(surveyID, userID uint) ([]models.SurveyResponse, error) {
	return s.responses.ListBySurveyAndUser(surveyID, userID)
}

func (s *ResponseService) Update(id uint, in UpdateResponseInput) (*models.SurveyResponse, error) {
	resp, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if *in.Status != models.ResponsePending && *in.Status != models.ResponseCompleted {
			verr := &apperr.ValidationError{}
			verr.Add("status", "debe ser PENDING o COMPLETED")
			return nil, verr
		}
		resp.Status = *in.Status
	}
	if in.Answers != nil {
		resp.Answers = *in.Answers
	}

	if err := s.responses.Update(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ResponseService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.responses.Delete(id)
}

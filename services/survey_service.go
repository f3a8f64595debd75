package services

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/apperr"
	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/repository"
)

type QuestionInput struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

type UpdateSurveyInput struct {
	Title     *string         `json:"title"`
	Questions []QuestionInput `json:"questions"`
}

// SurveyWithStatus anota una encuesta con el estado de la respuesta del
// usuario autenticado, tal como la pinta la pantalla de encuestas.
type SurveyWithStatus struct {
	models.Survey
	UserResponseStatus *string `json:"userResponseStatus"`
	IsCompleted        bool    `json:"isCompleted"`
	IsPending          bool    `json:"isPending"`
	ResponseID         *uint   `json:"responseId"`
}

type SurveyService struct {
	db        *gorm.DB
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
	users     repository.UserRepository
}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{
		db:        db,
		surveys:   repository.NewSurveyRepository(db),
		responses: repository.NewResponseRepository(db),
		users:     repository.NewUserRepository(db),
	}
}

func questionNeedsOptions(qType string) bool {
	switch qType {
	case models.QuestionSingleChoice, models.QuestionMultipleChoice, models.QuestionScale:
		return true
	}
	return false
}

func validQuestionType(qType string) bool {
	switch qType {
	case models.QuestionSingleChoice, models.QuestionMultipleChoice,
		models.QuestionScale, models.QuestionText:
		return true
	}
	return false
}

func validateQuestions(questions []QuestionInput) ([]models.Question, error) {
	verr := &apperr.ValidationError{}
	if len(questions) == 0 {
		verr.Add("questions", "debe incluir al menos una pregunta")
		return nil, verr
	}

	out := make([]models.Question, 0, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			verr.Add("questions", "la pregunta "+strconv.Itoa(i+1)+" no tiene texto")
		}
		if !validQuestionType(q.Type) {
			verr.Add("questions", "la pregunta "+strconv.Itoa(i+1)+" tiene un tipo desconocido")
		} else if questionNeedsOptions(q.Type) && len(q.Options) == 0 {
			verr.Add("questions", "la pregunta "+strconv.Itoa(i+1)+" requiere opciones")
		}
		out = append(out, models.Question{
			ID:       i + 1,
			Question: strings.TrimSpace(q.Question),
			Type:     q.Type,
			Options:  q.Options,
		})
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

// Create persiste la encuesta y pre-aprovisiona una respuesta PENDING por
// cada usuario existente (fan-out). Todo corre en una transacción: o queda
// la encuesta con sus N filas PENDING, o no queda nada.
func (s *SurveyService) Create(title string, questions []QuestionInput) (*models.Survey, error) {
	verr := &apperr.ValidationError{}
	if strings.TrimSpace(title) == "" {
		verr.Add("title", "es obligatorio")
	}
	parsed, qErr := validateQuestions(questions)
	if qErr != nil {
		var qv *apperr.ValidationError
		if errors.As(qErr, &qv) {
			verr.Fields = append(verr.Fields, qv.Fields...)
		} else {
			return nil, qErr
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	survey := models.Survey{Title: strings.TrimSpace(title), Questions: parsed}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.surveys.WithTx(tx).Create(&survey); err != nil {
			return err
		}

		userIDs, err := s.users.WithTx(tx).ListIDs()
		if err != nil {
			return err
		}
		pending := make([]models.SurveyResponse, 0, len(userIDs))
		for _, uid := range userIDs {
			pending = append(pending, models.SurveyResponse{
				SurveyID: survey.ID,
				UserID:   uid,
				Answers:  models.AnswerList{},
				Status:   models.ResponsePending,
			})
		}
		return s.responses.WithTx(tx).CreateBatch(pending)
	})
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *SurveyService) Get(id uint) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Encuesta", id)
		}
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) annotate(survey models.Survey, userID uint) (SurveyWithStatus, error) {
	out := SurveyWithStatus{Survey: survey}

	// Recorre las respuestas de la encuesta buscando la del usuario.
	// Cuadrático con el tamaño del colegio; suficiente a esta escala.
	responses, err := s.responses.ListBySurvey(survey.ID)
	if err != nil {
		return out, err
	}
	for i := range responses {
		if responses[i].UserID != userID {
			continue
		}
		status := responses[i].Status
		id := responses[i].ID
		out.UserResponseStatus = &status
		out.IsCompleted = status == models.ResponseCompleted
		out.IsPending = status == models.ResponsePending
		out.ResponseID = &id
		break
	}
	return out, nil
}

// ListWithStatus devuelve todas las encuestas anotadas para el usuario.
func (s *SurveyService) ListWithStatus(userID uint) ([]SurveyWithStatus, error) {
	surveys, err := s.surveys.List()
	if err != nil {
		return nil, err
	}
	out := make([]SurveyWithStatus, 0, len(surveys))
	for _, sv := range surveys {
		annotated, err := s.annotate(sv, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, annotated)
	}
	return out, nil
}

func (s *SurveyService) GetWithStatus(id, userID uint) (*SurveyWithStatus, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	annotated, err := s.annotate(*survey, userID)
	if err != nil {
		return nil, err
	}
	return &annotated, nil
}

func (s *SurveyService) Update(id uint, in UpdateSurveyInput) (*models.Survey, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			verr := &apperr.ValidationError{}
			verr.Add("title", "es obligatorio")
			return nil, verr
		}
		survey.Title = strings.TrimSpace(*in.Title)
	}
	if in.Questions != nil {
		parsed, err := validateQuestions(in.Questions)
		if err != nil {
			return nil, err
		}
		survey.Questions = parsed
	}

	if err := s.surveys.Update(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// Delete elimina primero las respuestas y luego la encuesta, en una sola
// transacción; la cascada se hace con borrados explícitos por id.
func (s *SurveyService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.responses.WithTx(tx).DeleteBySurvey(id); err != nil {
			return err
		}
		return s.surveys.WithTx(tx).Delete(id)
	})
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	ResponsePending   = "PENDING"
	ResponseCompleted = "COMPLETED"
)

// Answer referencia una pregunta por id; el valor puede ser string,
// []string o número según el tipo de pregunta.
type Answer struct {
	Question int         `json:"question"`
	Answer   interface{} `json:"answer"`
}

type AnswerList []Answer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		a = AnswerList{}
	}
	return json.Marshal(a)
}

func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("tipo de columna incompatible para answers")
}

// SurveyResponse une User y Survey. Invariante blanda: a lo sumo una fila
// PENDING por par (user, survey); la preserva la construcción (fan-out crea
// exactamente una y el envío la consume), no una restricción de la base.
type SurveyResponse struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	SurveyID    uint       `gorm:"not null;index" json:"surveyId"`
	UserID      uint       `gorm:"not null;index" json:"userId"`
	Answers     AnswerList `gorm:"type:text" json:"answers"`
	Status      string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	SubmittedAt time.Time  `gorm:"autoUpdateTime" json:"submittedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

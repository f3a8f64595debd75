package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionScale          = "scale"
	QuestionText           = "text"
)

// Question es un objeto de valor dentro del documento JSON de la encuesta,
// no una fila propia. Los ids se asignan en el servidor (1..n).
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
}

type QuestionList []Question

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		q = QuestionList{}
	}
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	}
	return errors.New("tipo de columna incompatible para questions")
}

type Survey struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string       `gorm:"size:255;not null" json:"title"`
	Questions QuestionList `gorm:"type:text;not null" json:"questions"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"createdAt"`

	Responses []SurveyResponse `gorm:"foreignKey:SurveyID" json:"-"`
}

func (Survey) TableName() string {
	return "surveys"
}

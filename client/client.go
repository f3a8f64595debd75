// Package client es el cliente Go del API, espejo de la capa HTTP de la
// app móvil: timeout fijo de 10s y errores normalizados en tres categorías
// (sin respuesta, respuesta con error, fallo armando la petición).
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/services"
)

const requestTimeout = 10 * time.Second

// APIError: el servidor respondió con un estado fuera de 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("error del servidor (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("error del servidor (%d)", e.StatusCode)
}

// ConnectionError: la petición salió pero no llegó respuesta alguna.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "no se pudo conectar con el servidor: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token se adjunta como Bearer en cada petición tras Login/Register.
	Token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err // fallo armando la petición; se devuelve tal cual
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register crea la cuenta y deja al cliente autenticado.
func (c *Client) Register(in services.RegisterInput) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(http.MethodPost, "/users", in, &out); err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out, nil
}

func (c *Client) Login(email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.do(http.MethodPost, "/users/login", body, &out); err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out, nil
}

func (c *Client) Me() (*models.User, error) {
	var out models.User
	if err := c.do(http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSurvey(title string, questions []services.QuestionInput) (*models.Survey, error) {
	body := map[string]interface{}{"title": title, "questions": questions}
	var out models.Survey
	if err := c.do(http.MethodPost, "/surveys", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Surveys lista las encuestas anotadas con el estado del usuario.
func (c *Client) Surveys() ([]services.SurveyWithStatus, error) {
	var out []services.SurveyWithStatus
	if err := c.do(http.MethodGet, "/surveys", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Survey(id uint) (*services.SurveyWithStatus, error) {
	var out services.SurveyWithStatus
	path := "/surveys/" + strconv.FormatUint(uint64(id), 10)
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitResponse(surveyID uint, answers models.AnswerList) (*models.SurveyResponse, error) {
	body := map[string]interface{}{"surveyId": surveyID, "answers": answers}
	var out models.SurveyResponse
	if err := c.do(http.MethodPost, "/survey-responses", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyResponses() ([]models.SurveyResponse, error) {
	var out []models.SurveyResponse
	if err := c.do(http.MethodGet, "/survey-responses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePanicAlert(latitude, longitude float64, userID uint) (*models.PanicAlert, error) {
	body := services.CreateAlertInput{Latitude: latitude, Longitude: longitude, UserID: userID}
	var out models.PanicAlert
	if err := c.do(http.MethodPost, "/panic-alerts", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

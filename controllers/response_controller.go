package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dparra0/alerta-escolar-server/middleware"
	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/services"
)

type ResponseController struct {
	Service *services.ResponseService
}

func NewResponseController(svc *services.ResponseService) *ResponseController {
	return &ResponseController{Service: svc}
}

type submitResponseReq struct {
	SurveyID uint              `json:"surveyId"`
	Answers  models.AnswerList `json:"answers"`
}

// Create envía las respuestas del solicitante. El userId sale siempre del
// token; cualquier valor que mande el cliente se ignora.
func (ctl *ResponseController) Create(c *gin.Context) {
	var req submitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload inválido"})
		return
	}
	if req.SurveyID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "surveyId es obligatorio"})
		return
	}

	resp, err := ctl.Service.Submit(req.SurveyID, middleware.CallerID(c), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List devuelve las respuestas del solicitante o, con ?surveyId=, todas
// las de una encuesta.
func (ctl *ResponseController) List(c *gin.Context) {
	if raw := c.Query("surveyId"); raw != "" {
		surveyID, err := strconv.Atoi(raw)
		if err != nil || surveyID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "surveyId inválido"})
			return
		}
		responses, err := ctl.Service.ListForSurvey(uint(surveyID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, responses)
		return
	}

	responses, err := ctl.Service.ListForUser(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// ListForSurveyAndCaller responde GET /survey-responses/survey/:surveyId/user.
func (ctl *ResponseController) ListForSurveyAndCaller(c *gin.Context) {
	surveyID, ok := parseIDParam(c, "surveyId")
	if !ok {
		return
	}
	responses, err := ctl.Service.ListForSurveyAndUser(surveyID, middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

func (ctl *ResponseController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctl.Service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctl *ResponseController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateResponseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload inválido"})
		return
	}

	resp, err := ctl.Service.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctl *ResponseController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.Service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

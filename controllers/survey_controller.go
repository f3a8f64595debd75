package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dparra0/alerta-escolar-server/middleware"
	"github.com/dparra0/alerta-escolar-server/services"
)

type SurveyController struct {
	Service *services.SurveyService
}

func NewSurveyController(svc *services.SurveyService) *SurveyController {
	return &SurveyController{Service: svc}
}

type createSurveyReq struct {
	Title     string                   `json:"title"`
	Questions []services.QuestionInput `json:"questions"`
}

// Create dispara el fan-out: una fila PENDING por usuario existente.
func (ctl *SurveyController) Create(c *gin.Context) {
	var req createSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload inválido"})
		return
	}

	survey, err := ctl.Service.Create(req.Title, req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// List anota cada encuesta con el estado de la respuesta del solicitante.
func (ctl *SurveyController) List(c *gin.Context) {
	surveys, err := ctl.Service.ListWithStatus(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, surveys)
}

func (ctl *SurveyController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	survey, err := ctl.Service.GetWithStatus(id, middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

func (ctl *SurveyController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSurveyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload inválido"})
		return
	}

	survey, err := ctl.Service.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

func (ctl *SurveyController) Delete(c *gin.Context) {
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

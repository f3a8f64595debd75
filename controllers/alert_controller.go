package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dparra0/alerta-escolar-server/services"
)

type AlertController struct {
	Service *services.AlertService
}

func NewAlertController(svc *services.AlertService) *AlertController {
	return &AlertController{Service: svc}
}

// Create registra una pulsación del botón de pánico con sus coordenadas.
func (ctl *AlertController) Create(c *gin.Context) {
	var req services.CreateAlertInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload inválido"})
		return
	}

	alert, err := ctl.Service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (ctl *AlertController) List(c *gin.Context) {
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.Atoi(raw)
		if err != nil || userID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "userId inválido"})
			return
		}
		alerts, err := ctl.Service.ListForUser(uint(userID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, alerts)
		return
	}

	alerts, err := ctl.Service.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (ctl *AlertController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	alert, err := ctl.Service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (ctl *AlertController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAlertInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload inválido"})
		return
	}

	alert, err := ctl.Service.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (ctl *AlertController) Delete(c *gin.Context) {
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

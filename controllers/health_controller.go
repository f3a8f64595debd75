package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

func (ctl *HealthController) Check(c *gin.Context) {
	sqlDB, err := ctl.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"db":     "down",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"db":     "up",
		"time":   time.Now().UTC(),
	})
}

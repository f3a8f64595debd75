// El paquete controllers traduce HTTP a llamadas de servicio: bind del
// payload, delegación y mapeo de errores tipados a códigos de estado.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dparra0/alerta-escolar-server/apperr"
)

// respondError mapea la taxonomía de errores de los servicios:
// validación → 400 con los campos señalados, entidad inexistente → 404,
// cualquier otra cosa → 500 sin detalles.
func respondError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Datos inválidos",
			"errors":  verr.Fields,
		})
		return
	}

	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno del servidor"})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dparra0/alerta-escolar-server/utils"
)

// CtxUserID es la clave bajo la que queda el id del usuario autenticado.
const CtxUserID = "userID"

// AuthJWT exige Authorization: Bearer <token>, valida el JWT y deja el id
// del sub en el contexto. Cierra con 401 ante cualquier fallo.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token no proporcionado"})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		userID, err := utils.VerifyToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// CallerID lee el id que dejó AuthJWT; solo es válido tras el middleware.
func CallerID(c *gin.Context) uint {
	return c.MustGet(CtxUserID).(uint)
}

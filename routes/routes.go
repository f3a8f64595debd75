package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/controllers"
	"github.com/dparra0/alerta-escolar-server/middleware"
	"github.com/dparra0/alerta-escolar-server/services"
)

// SetupRoutes arma el grafo de dependencias (db → servicios → controladores)
// y registra las rutas. Sin contenedor: todo pasa por constructores.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	authSvc := services.NewAuthService(db)
	surveySvc := services.NewSurveyService(db)
	responseSvc := services.NewResponseService(db)
	alertSvc := services.NewAlertService(db)

	auth := controllers.NewAuthController(authSvc)
	surveys := controllers.NewSurveyController(surveySvc)
	responses := controllers.NewResponseController(responseSvc)
	alerts := controllers.NewAlertController(alertSvc)
	export := controllers.NewExportController(surveySvc, responseSvc, authSvc)
	health := controllers.NewHealthController(db)

	r.GET("/health", health.Check)

	users := r.Group("/users")
	{
		users.POST("", auth.Register)
		users.POST("/login", auth.Login)
		users.GET("/me", middleware.AuthJWT(), auth.Me)
		users.GET("/:id", middleware.AuthJWT(), auth.GetUser)
		users.PATCH("/:id", middleware.AuthJWT(), auth.UpdateUser)
	}

	surveyRoutes := r.Group("/surveys")
	{
		// La creación queda fuera del guard (llamada administrativa) pero
		// limitada por IP: es el endpoint con fan-out.
		surveyRoutes.POST("", middleware.RateLimitSurveyCreate(), surveys.Create)

		surveyRoutes.GET("", middleware.AuthJWT(), surveys.List)
		surveyRoutes.GET("/:id", middleware.AuthJWT(), surveys.Get)
		surveyRoutes.PATCH("/:id", middleware.AuthJWT(), surveys.Update)
		surveyRoutes.DELETE("/:id", middleware.AuthJWT(), surveys.Delete)
		surveyRoutes.GET("/:id/export", middleware.AuthJWT(), export.Export)
	}

	responseRoutes := r.Group("/survey-responses")
	responseRoutes.Use(middleware.AuthJWT())
	{
		responseRoutes.POST("", responses.Create)
		responseRoutes.GET("", responses.List)
		responseRoutes.GET("/survey/:surveyId/user", responses.ListForSurveyAndCaller)
		responseRoutes.GET("/:id", responses.Get)
		responseRoutes.PATCH("/:id", responses.Update)
		responseRoutes.DELETE("/:id", responses.Delete)
	}

	alertRoutes := r.Group("/panic-alerts")
	alertRoutes.Use(middleware.AuthJWT())
	{
		alertRoutes.POST("", alerts.Create)
		alertRoutes.GET("", alerts.List)
		alertRoutes.GET("/:id", alerts.Get)
		alertRoutes.PATCH("/:id", alerts.Update)
		alertRoutes.DELETE("/:id", alerts.Delete)
	}
}

package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dparra0/alerta-escolar-server/config"
	"github.com/dparra0/alerta-escolar-server/middleware"
	"github.com/dparra0/alerta-escolar-server/routes"
)

func main() {
	// .env es opcional; en despliegue las variables llegan del entorno.
	if err := godotenv.Load(); err != nil {
		log.Println("sin archivo .env, usando variables de entorno")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuración inválida: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("no se pudo inicializar la base de datos: %v", err)
	}
	log.Println("Conectado a PostgreSQL y esquema migrado")

	r := gin.Default()

	// La app móvil consume el API desde cualquier origen.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("no se pudieron configurar los proxies: %v", err)
	}

	routes.SetupRoutes(r, db)

	log.Printf("Servidor escuchando en el puerto %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("el servidor terminó con error: %v", err)
	}
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"campusgate/internal/config"
	"campusgate/internal/database"
	"campusgate/internal/domain"
	"campusgate/internal/middleware"
	"campusgate/internal/modules/auth"
	"campusgate/internal/modules/lostfound"
	"campusgate/internal/repository"
	"campusgate/internal/upstream"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	credentialRepo := repository.NewCredentialRepository(db)
	lostfoundRepo := repository.NewLostfoundRepository(db)

	gateway := buildGateway(cfg, log)

	authService := auth.NewService(credentialRepo, gateway, log)
	authHandler := auth.NewHandler(authService)

	lostfoundService := lostfound.NewService(lostfoundRepo)
	lostfoundHandler := lostfound.NewHandler(lostfoundService)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.IdentityGate(authService, log))
	{
		authHandler.RegisterRoutes(v1)
		lostfoundHandler.RegisterRoutes(v1)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminOnly(cfg.AdminCardnums))
		{
			lostfoundHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}

// buildGateway picks the upstream strategy from configuration. The real
// portal pair is the default; the static provider exists for local work
// without campus network access.
func buildGateway(cfg *config.Config, log *zap.Logger) *upstream.Gateway {
	if cfg.AuthProvider == "static" {
		users := map[string]upstream.StaticUser{
			"21318000": {Password: "secret", Profile: domain.Profile{Name: "Dev User", Schoolnum: "71118000"}},
			"012345":   {Password: "gsecret"},
			"22012345": {Password: "secret", Profile: domain.Profile{Name: "Dev Grad", Schoolnum: "220123450"}},
		}
		static := upstream.NewStaticProvider(users)
		return upstream.NewGateway(static, static)
	}

	return upstream.NewGateway(
		upstream.NewPortalProvider(cfg.PortalBaseURL, log),
		upstream.NewGraduateProvider(cfg.GradBaseURL, log),
	)
}

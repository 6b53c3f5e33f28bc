package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/visit-pipeline/internal/application/auth"
	"github.com/jhoicas/visit-pipeline/internal/application/dashboard"
	"github.com/jhoicas/visit-pipeline/internal/application/usecase"
	appvisit "github.com/jhoicas/visit-pipeline/internal/application/visit"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
	"github.com/jhoicas/visit-pipeline/internal/infrastructure/activity"
	infrapdf "github.com/jhoicas/visit-pipeline/internal/infrastructure/pdf"
	"github.com/jhoicas/visit-pipeline/internal/infrastructure/postgres"
	"github.com/jhoicas/visit-pipeline/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/visit-pipeline/internal/interfaces/http"
	"github.com/jhoicas/visit-pipeline/pkg/config"
	"github.com/jhoicas/visit-pipeline/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Location().String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	visitRepo := postgres.NewVisitRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Registro de actividad: PostgreSQL por defecto, stream de Redis si ACTIVITY_SINK=redis
	var activityLog repository.ActivityLog = postgres.NewActivityRepository(pool)
	if cfg.Activity.Sink == "redis" {
		client, err := activity.NewRedisClient(ctx, cfg.Activity)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Activity.RedisAddr).Msg("conexión a Redis")
		}
		defer client.Close()
		activityLog = activity.NewStreamLog(client, cfg.Activity.Stream)
	}

	// Fotos en MinIO/S3. Sin almacenamiento las visitas con foto fallan, el resto sigue operando.
	var photos appvisit.PhotoStore
	photoStore, err := storage.NewPhotoStore(cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("almacenamiento de fotos deshabilitado")
	} else {
		if err := photoStore.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("no se pudo verificar el bucket")
		}
		photos = photoStore
	}

	// PDF: pase de visita con código QR
	passGenerator := infrapdf.NewPassGenerator(cfg.App.Name)

	visitUC := appvisit.NewUseCase(visitRepo, userRepo, activityLog, photos, passGenerator, log, appvisit.Config{
		Location:        cfg.App.Location(),
		MaxPhotoBytes:   cfg.Upload.MaxPhotoBytes,
		ActivityTimeout: time.Duration(cfg.Activity.TimeoutMS) * time.Millisecond,
	})
	dashboardUC := dashboard.NewUseCase(visitRepo, log, dashboard.Config{
		Location: cfg.App.Location(),
		PhotoURL: visitUC.PhotoURL,
	})
	authUC := auth.NewAuthUseCase(userRepo, activityLog, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	hostUC := usecase.NewHostUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Visit Pipeline API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		VisitUC:       visitUC,
		DashboardUC:   dashboardUC,
		HostUC:        hostUC,
		JWTSecret:     cfg.JWT.Secret,
		MaxPhotoBytes: cfg.Upload.MaxPhotoBytes,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

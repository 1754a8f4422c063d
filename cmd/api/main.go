package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/mail"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
	inframongo "github.com/jhoicas/ecommerce-api/internal/infrastructure/mongo"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/ecommerce-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/ecommerce-api/internal/interfaces/http"
	"github.com/jhoicas/ecommerce-api/pkg/config"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

const docsFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		userRepo    repository.UserRepository
		productRepo repository.ProductRepository
		closers     []func()
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		closers = append(closers, pool.Close)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
		userRepo = postgres.NewUserRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
	case config.DriverMongo:
		client, db, err := inframongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		if err := inframongo.EnsureIndexes(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("índices MongoDB")
		}
		userRepo = inframongo.NewUserRepository(db)
		productRepo = inframongo.NewProductRepository(db)
	case config.DriverMemory:
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		userRepo = memory.NewUserRepository()
		productRepo = memory.NewProductRepository()
	}

	var denylist ports.TokenDenylist = infraredis.NopDenylist{}
	if cfg.Redis.URL != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		closers = append(closers, func() { _ = client.Close() })
		denylist = infraredis.NewTokenDenylist(client)
	} else {
		log.Warn().Msg("REDIS_URL vacío: el logout no revoca tokens en el servidor")
	}

	mailer := mail.New(cfg.SMTP, log)

	authUC := auth.NewAuthUseCase(userRepo, mailer, denylist, auth.Config{
		Secret:        cfg.JWT.Secret,
		Issuer:        cfg.JWT.Issuer,
		TokenTTL:      cfg.JWT.TTL(),
		ResetTokenTTL: cfg.Catalog.ResetTokenTTL,
		PublicURL:     cfg.App.PublicURL,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, cfg.Catalog.ResultsPerPage)

	docs := docsFile
	if _, err := os.Stat(docs); err != nil {
		log.Warn().Str("file", docs).Msg("swagger.json no encontrado, /docs deshabilitado")
		docs = ""
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:     cfg.App.Name,
		DocsFile: docs,
		Log:      log,
		Metrics:  httpRouter.NewMetrics("ecommerce"),
	}, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ProductUC:    productUC,
		CookieSecure: cfg.JWT.CookieSecure,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(app, cfg.HTTP.Addr(), quit); err != nil {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		log.Fatal().Err(err).Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP no pudo escuchar")
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}

	log.Info().Msg("aplicación detenida")
}

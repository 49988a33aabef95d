package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/database"
	"github.com/iliyamo/cinema-scheduler/internal/handler"
	"github.com/iliyamo/cinema-scheduler/internal/lock"
	"github.com/iliyamo/cinema-scheduler/internal/logger"
	"github.com/iliyamo/cinema-scheduler/internal/middleware"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/router"
	"github.com/iliyamo/cinema-scheduler/internal/service"
)

// redisPinger adapts *redis.Client to handler.Pinger.
type redisPinger struct{ rdb *redis.Client }

// PingContext sends PING and returns its error.
func (p redisPinger) PingContext(ctx context.Context) error { return p.rdb.Ping(ctx).Err() }

//	@title						Cinema Scheduler API
//	@version					1.0
//	@description				Catalog management and screening admission for cinemas.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				"Bearer " followed by an access token.
func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "cinema-scheduler"})

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("connect database", "err", err)
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("apply migrations", "err", err)
		}
	}

	lockCfg := config.LoadLockConfig()
	rdb := config.NewRedisClient()
	var locker lock.Locker
	if rdb != nil {
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, lockCfg)
		log.Info("redis connected; venue lock, rate limit and cache are shared")
	} else {
		locker = lock.NewLocalLocker(lockCfg.Wait)
		log.Warn("redis unavailable; using in-process venue lock and rate limiter, cache disabled")
	}

	directors := repository.NewDirectorRepo(db)
	genres := repository.NewGenreRepo(db)
	movies := repository.NewMovieRepo(db)
	cinemas := repository.NewCinemaRepo(db)
	auditoriums := repository.NewAuditoriumRepo(db)
	functions := repository.NewFunctionRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	publisher := queue.NewAMQPPublisher(cfg.RabbitURL, log)
	scheduler := service.NewScheduler(functions, movies, auditoriums, locker, publisher, lockCfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ConsumerOn {
		consumer := queue.NewScheduleConsumer(cfg.RabbitURL, "logs", log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("schedule consumer stopped", "err", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	deps := map[string]handler.Pinger{"mysql": db}
	if rdb != nil {
		deps["redis"] = redisPinger{rdb: rdb}
	}
	router.RegisterRoutes(e, deps)
	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users, tokens),
		Directors:   handler.NewDirectorHandler(directors),
		Genres:      handler.NewGenreHandler(genres),
		Movies:      handler.NewMovieHandler(movies, genres),
		Cinemas:     handler.NewCinemaHandler(cinemas, auditoriums),
		Auditoriums: handler.NewAuditoriumHandler(auditoriums),
		Functions:   handler.NewFunctionHandler(scheduler),
	}, cfg.JWTSecret, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", "err", err)
	}
}

package main

import (
	"context"
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/database"
	"github.com/iliyamo/cinema-scheduler/internal/lock"
	"github.com/iliyamo/cinema-scheduler/internal/logger"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/seed"
	"github.com/iliyamo/cinema-scheduler/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "cinema-seed"})

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("connect database", "err", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal("apply migrations", "err", err)
	}

	// Share the server's venue lock when Redis is up so seeding can run
	// next to a live instance.
	lockCfg := config.LoadLockConfig()
	var locker lock.Locker = lock.NewLocalLocker(lockCfg.Wait)
	if rdb := config.NewRedisClient(); rdb != nil {
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, lockCfg)
	}

	movies := repository.NewMovieRepo(db)
	auditoriums := repository.NewAuditoriumRepo(db)
	s := &seed.Seeder{
		Directors:   repository.NewDirectorRepo(db),
		Genres:      repository.NewGenreRepo(db),
		Movies:      movies,
		Cinemas:     repository.NewCinemaRepo(db),
		Auditoriums: auditoriums,
		Functions:   service.NewScheduler(repository.NewFunctionRepo(db), movies, auditoriums, locker, nil, lockCfg, log),
		Users:       repository.NewUserRepo(db),
		Log:         log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sc := config.LoadSeedConfig()
	accounts := []seed.Account{
		{Email: sc.AdminEmail, Password: sc.AdminPassword, Role: model.RoleAdmin},
		{Email: sc.StaffEmail, Password: sc.StaffPassword, Role: model.RoleStaff},
	}
	if err := s.Accounts(ctx, accounts, cfg.BcryptCost); err != nil {
		log.Fatal("seed accounts", "err", err)
	}
	if err := s.Catalog(ctx); err != nil {
		log.Fatal("seed catalog", "err", err)
	}
}

package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/config"
	"github.com/iliyamo/court-reservation/internal/database"
	"github.com/iliyamo/court-reservation/internal/handler"
	"github.com/iliyamo/court-reservation/internal/middleware"
	"github.com/iliyamo/court-reservation/internal/queue"
	"github.com/iliyamo/court-reservation/internal/repository"
	"github.com/iliyamo/court-reservation/internal/router"
)

func main() {
	// A missing .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter; when it is
	// unreachable both degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	venueRepo := repository.NewVenueRepo(db)
	courtRepo := repository.NewCourtRepo(db)
	templateRepo := repository.NewSlotTemplateRepo(db)
	holidayRepo := repository.NewHolidayRepo(db)
	membershipRepo := repository.NewMembershipRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	engine := booking.NewService(courtRepo, templateRepo, holidayRepo, reservationRepo, membershipRepo, booking.Config{
		MaxCells:      cfg.BulkMaxCells,
		MaxRangeDays:  cfg.BulkMaxRangeDays,
		FailureStreak: cfg.BulkFailStreak,
	})

	handler.SetDBTimeout(time.Duration(cfg.DBTimeoutMS) * time.Millisecond)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(courtRepo, engine)
	reservationHandler := handler.NewReservationHandler(engine, reservationRepo)
	adminHandler := handler.NewAdminHandler(venueRepo, courtRepo, templateRepo, holidayRepo, membershipRepo, reservationRepo)

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, cache)
	router.RegisterPlayer(e, reservationHandler, cfg.JWTSecret, limit)
	router.RegisterAdmin(e, adminHandler, reservationHandler, cfg.JWTSecret)

	// Background consumer writing confirmed-reservation logs.  It runs
	// its own reconnect loop for the life of the process.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package server

import (
	"fmt"
	"time"

	"gradinvite/core/cache"
	"gradinvite/core/config"
	"gradinvite/core/constants"
	"gradinvite/core/database"
	"gradinvite/core/logger"
	"gradinvite/core/middleware"
	"gradinvite/core/session"
	"gradinvite/core/storage"
	"gradinvite/modules/admin"
	"gradinvite/modules/event"
	"gradinvite/modules/invitee"
	"gradinvite/modules/mailer"
	"gradinvite/modules/rsvp"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func Run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := config.Get()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	authority := session.NewAuthority(cfg.Session.Secret, time.Duration(cfg.Session.TTLHours)*time.Hour)
	mw := middleware.New(authority, constants.SessionCookieName)

	mailService, err := mailer.NewService(cfg.Mail)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}

	c := cache.New(cfg.Redis)

	var store storage.ObjectStorage
	if s3Store := storage.NewS3Storage(cfg.Storage); s3Store != nil {
		store = s3Store
	} else {
		logger.Warn("Object storage not configured, logo upload disabled")
	}

	var queue *asynq.Client
	if cfg.Redis.Enabled() {
		queue = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer queue.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	v1 := e.Group("/api/v1")

	admin.Init(v1, db, mw, authority)
	event.Init(v1, db, mw, store)
	inviteeService := invitee.Init(v1, db, mw, mailService, c, queue, cfg.App.BaseURL)
	rsvp.Init(v1, db, mw, c)

	// Optional in-process worker for queued bulk sends.
	if cfg.App.Worker && cfg.Redis.Enabled() {
		srv := asynq.NewServer(
			asynq.RedisClientOpt{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			},
			asynq.Config{Concurrency: 5},
		)
		mux := asynq.NewServeMux()
		mux.HandleFunc(constants.TaskTypeBulkSend, inviteeService.HandleBulkSendTask)
		go func() {
			if err := srv.Run(mux); err != nil {
				logger.Error("asynq worker stopped", err)
			}
		}()
		logger.Info("Background worker started")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server", "addr", addr)
	return e.Start(addr)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/srms-api/internal/handler"
	"github.com/campusworks/srms-api/internal/middleware"
	"github.com/campusworks/srms-api/internal/repository"
	"github.com/campusworks/srms-api/internal/service"
	"github.com/campusworks/srms-api/internal/store"
	"github.com/campusworks/srms-api/pkg/config"
	"github.com/campusworks/srms-api/pkg/logger"
	corsmiddleware "github.com/campusworks/srms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusworks/srms-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	fileStore, err := store.NewFileStore(cfg.Data.Dir, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open data directory", "error", err)
	}
	recordStore := store.Instrument(fileStore, metricsSvc.ObserveStoreOperation)

	students := repository.NewStudentRepository(recordStore)
	teachers := repository.NewTeacherRepository(recordStore)
	attendance := repository.NewAttendanceRepository(recordStore)
	marks := repository.NewMarkRepository(recordStore)
	payments := repository.NewPaymentRepository(recordStore)

	aggregationSvc := service.NewAggregationService(students, attendance, marks, payments, logr)
	paymentSvc := service.NewPaymentService(students, payments, nil, logr)
	studentSvc := service.NewStudentService(students, nil, logr)
	teacherSvc := service.NewTeacherService(teachers, nil, logr)
	attendanceSvc := service.NewAttendanceService(attendance, nil, logr)
	markSvc := service.NewMarkService(marks, nil, logr)
	exportSvc := service.NewExportService(aggregationSvc, logr)
	authSvc := service.NewAuthService(students, teachers, nil, logr, service.AuthConfig{
		Secret:        cfg.JWT.Secret,
		Expiration:    cfg.JWT.Expiration,
		Issuer:        cfg.JWT.Issuer,
		AdminID:       cfg.Admin.ID,
		AdminPassword: cfg.Admin.Password,
		AdminName:     cfg.Admin.Name,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Admin:   handler.NewAdminHandler(studentSvc, teacherSvc, aggregationSvc, paymentSvc, exportSvc),
		Teacher: handler.NewTeacherHandler(attendanceSvc, markSvc, studentSvc),
		Student: handler.NewStudentHandler(aggregationSvc),
		Parent:  handler.NewParentHandler(aggregationSvc, paymentSvc, metricsSvc),
		Metrics: metricsSvc,
		AuthSvc: authSvc,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "data_dir", cfg.Data.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}

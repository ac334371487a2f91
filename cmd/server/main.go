package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"cultivapp/config"
	"cultivapp/database"
	"cultivapp/pkg/catalog"
	"cultivapp/pkg/guard"
	"cultivapp/pkg/middleware"
	"cultivapp/pkg/scheduler"
	"cultivapp/pkg/strategy"
	"cultivapp/router"

	// Auth
	authCtrlImp "cultivapp/pkg/auth/controllerImp"
	authSvcImp "cultivapp/pkg/auth/serviceImp"
	userRepoImp "cultivapp/pkg/user/repositoryImp"

	// Catalog admin
	ruleCtrlImp "cultivapp/pkg/rule/controllerImp"
	ruleRepoImp "cultivapp/pkg/rule/repositoryImp"
	speciesCtrlImp "cultivapp/pkg/species/controllerImp"
	speciesRepoImp "cultivapp/pkg/species/repositoryImp"
	stageRepoImp "cultivapp/pkg/stage/repositoryImp"

	// Crops
	cropCtrlImp "cultivapp/pkg/crop/controllerImp"
	cropRepoImp "cultivapp/pkg/crop/repositoryImp"
	cropSvcImp "cultivapp/pkg/crop/serviceImp"

	// Tasks
	taskCtrlImp "cultivapp/pkg/task/controllerImp"
	taskRepoImp "cultivapp/pkg/task/repositoryImp"
	taskSvcImp "cultivapp/pkg/task/serviceImp"

	// Notifications
	notifCtrlImp "cultivapp/pkg/notification/controllerImp"
	notifRepoImp "cultivapp/pkg/notification/repositoryImp"
	notifSvcImp "cultivapp/pkg/notification/serviceImp"

	// Health
	healthCtrlImp "cultivapp/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.Timezone, err)
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Repos
	userRepo := userRepoImp.New(db)
	speciesRepo := speciesRepoImp.New(db)
	stageRepo := stageRepoImp.New(db)
	ruleRepo := ruleRepoImp.New(db)
	cropRepo := cropRepoImp.New(db)
	taskRepo := taskRepoImp.New(db)
	notifRepo := notifRepoImp.New(db)

	// 4) Optional catalog seed
	if cfg.CatalogPath != "" {
		if err := catalog.New(speciesRepo).Seed(cfg.CatalogPath); err != nil {
			log.Printf("catalog warn: %v", err)
		}
	}

	// 5) Services
	locks := guard.New()
	registry := strategy.NewRegistry()
	notifSvc := notifSvcImp.New(notifRepo)
	cropSvc := cropSvcImp.New(cropRepo, stageRepo, speciesRepo, userRepo, notifSvc, locks)
	taskSvc := taskSvcImp.New(taskRepo, cropRepo, stageRepo, registry, notifSvc, locks)
	authSvc := authSvcImp.New(userRepo, cfg.JWTSecret)

	// 6) Daily scheduler
	sched, err := scheduler.New(cropSvc, taskSvc, scheduler.Config{
		Location: loc,
		StageAt:  cfg.StageTickAt,
		TaskAt:   cfg.TaskTickAt,
	})
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	sched.Start(ctx)

	// 7) Controllers
	authCtrl := authCtrlImp.New(authSvc)
	cropCtrl := cropCtrlImp.New(cropSvc)
	taskCtrl := taskCtrlImp.New(taskSvc, cropSvc)
	speciesCtrl := speciesCtrlImp.New(speciesRepo, ruleRepo, cropRepo)
	ruleCtrl := ruleCtrlImp.New(ruleRepo)
	notifCtrl := notifCtrlImp.New(notifSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 8) Echo + router
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())

	r := router.New(
		e,
		middleware.Auth(authSvc),
		middleware.AdminOnly(),
		authCtrl,
		cropCtrl,
		taskCtrl,
		speciesCtrl,
		ruleCtrl,
		notifCtrl,
		hCtrl,
	)

	// 9) Start, then drain on SIGINT/SIGTERM
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	sched.Shutdown()

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

package app

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/infrastructure/cache"
	persistence "talent-match/internal/infrastructure/persistence/postgres"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/pkg/logger"
	"talent-match/internal/pkg/validation"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the HTTP server.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Handlers routes.Handlers
	Auth     *middleware.AuthMiddleware

	employees *persistence.EmployeeRepository
	stopHub   context.CancelFunc
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	employees, err := persistence.NewEmployeeRepository(ctx, db.SQLDB())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(ctx, cfg.Redis, log)

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(log)
	go hub.Run(hubCtx)
	notifier := ws.NewNotifier(hub)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	v := validation.New()

	inv := usecase.NewInvalidation(redis, notifier, usecase.MatchingResultPattern, log)

	authUC := usecase.NewAuthUsecase(employees, jwtSvc)
	userUC := usecase.NewUserUsecase(employees, inv)
	skillUC := usecase.NewSkillUsecase(repository.NewPostgresSkillRepository(db))
	employeeSkillUC := usecase.NewEmployeeSkillUsecase(repository.NewPostgresEmployeeSkillRepository(db), inv)
	projectUC := usecase.NewProjectUsecase(repository.NewPostgresProjectRepository(db), inv)
	clientUC := usecase.NewClientUsecase(repository.NewPostgresClientRepository(db))
	matchingUC := usecase.NewMatchingUsecase(
		repository.NewPostgresMatchingRepository(db),
		redis,
		notifier,
		usecase.MatchingOptions{
			CacheTTL:     cfg.Matching.CacheTTL,
			DefaultLimit: cfg.Matching.RecommendationLimit,
			RunTimeout:   cfg.Matching.RunTimeout,
		},
		log,
	)

	return &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Cache:  redis,
		Hub:    hub,
		Handlers: routes.Handlers{
			Health:        handler.NewHealthHandler(db, redis),
			Auth:          handler.NewAuthHandler(authUC, v),
			User:          handler.NewUserHandler(userUC, v),
			Skill:         handler.NewSkillHandler(skillUC, v),
			EmployeeSkill: handler.NewEmployeeSkillHandler(employeeSkillUC, v),
			Project:       handler.NewProjectHandler(projectUC, v),
			Client:        handler.NewClientHandler(clientUC, v),
			Matching:      handler.NewMatchingHandler(matchingUC, v),
			WS:            ws.NewHandler(hub, log),
		},
		Auth:      middleware.NewAuthMiddleware(jwtSvc),
		employees: employees,
		stopHub:   stopHub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.employees != nil {
		errs = append(errs, c.employees.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

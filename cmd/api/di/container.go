package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quiz-service/cmd/api/infrastructure"
	"quiz-service/internal/adapter/cache"
	"quiz-service/internal/adapter/gin/handler"
	"quiz-service/internal/adapter/gin/middleware"
	"quiz-service/internal/adapter/gin/router"
	"quiz-service/internal/adapter/gin/validation"
	"quiz-service/internal/adapter/repository/cached"
	"quiz-service/internal/adapter/repository/document"
	"quiz-service/internal/config"
	"quiz-service/internal/domain/quiz"
	"quiz-service/internal/domain/user"
	"quiz-service/internal/usecase/enrollment"
	"quiz-service/pkg/docstore"
	redisclient "quiz-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Store       *docstore.Store
	RedisClient *redisclient.Client
	Enrollment  enrollment.Usecase
	Router      *gin.Engine
}

// NewContainer creates and initializes all application dependencies.
// Redis is only connected when REDIS_ENABLED is set.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (_ *Container, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	c.DB, err = infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c.Store = docstore.New(c.DB, l.Named("docstore"))
	if err := c.Store.Migrate(ctx, &user.User{}, &quiz.Quiz{}); err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		c.RedisClient, err = infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
	}

	var (
		userRepo document.Repository[user.User] = document.NewCollectionRepository[user.User](c.Store, l)
		quizRepo document.Repository[quiz.Quiz] = document.NewCollectionRepository[quiz.Quiz](c.Store, l)
		userInv  enrollment.Invalidator
		quizInv  enrollment.Invalidator
	)
	if cfg.Cache.Enabled {
		cachedUsers := cached.NewRepository(userRepo, cache.NewRedisDocumentCache[user.User](c.RedisClient.Client, cfg.Cache.TTL, l), l)
		cachedQuizzes := cached.NewRepository(quizRepo, cache.NewRedisDocumentCache[quiz.Quiz](c.RedisClient.Client, cfg.Cache.TTL, l), l)
		userRepo, userInv = cachedUsers, cachedUsers
		quizRepo, quizInv = cachedQuizzes, cachedQuizzes
		l.Info("document cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	c.Enrollment = enrollment.New(c.Store, userInv, quizInv, l)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(c.RedisClient.Client, middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RPS,
			BurstCapacity:     cfg.RateLimit.Burst,
		}, l)
	}

	c.Router = router.SetupRouter(router.Dependencies{
		Users:       handler.NewUserHandler(userRepo, l),
		Quizzes:     handler.NewQuizHandler(quizRepo, docstore.NewCollection[quiz.Quiz](c.Store), l),
		Enrollment:  handler.NewEnrollmentHandler(c.Enrollment, l),
		Health:      handler.NewHealthHandler(c.Store, cfg.Logger.ServiceName, cfg.Logger.ServiceVersion, l),
		Validator:   validation.New(l),
		Metrics:     middleware.NewMetrics(reg),
		RateLimiter: rateLimiter,
		Log:         l,
	})

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}

package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/DennisRussell0/cereal-api/internal/auth"
	"github.com/DennisRussell0/cereal-api/internal/config"
	"github.com/DennisRussell0/cereal-api/internal/images"
	"github.com/DennisRussell0/cereal-api/internal/logging"
	"github.com/DennisRussell0/cereal-api/internal/migrations"
	"github.com/DennisRussell0/cereal-api/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type App struct {
	cfg    config.Config
	log    *logrus.Logger
	pool   *pgxpool.Pool
	db     *sql.DB
	redis  *redis.Client
	router *gin.Engine
}

func New(ctx context.Context, cfg config.Config, log *logrus.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	pool, db, err := repo.OpenPostgres(ctx, cfg.PG.DSN)
	if err != nil {
		return nil, err
	}
	a.pool, a.db = pool, db

	if err := migrations.Up(ctx, db); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	ttl := cfg.Session.TTL.Duration()
	var sessions auth.Store
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.redis = rdb
		sessions = auth.NewRedisStore(rdb, ttl)
	default:
		sessions = auth.NewMemoryStore(ttl)
	}
	log.WithField("backend", cfg.Session.Backend).Info("session store ready")

	if idx, err := images.LoadIndex(cfg.Catalog.ImageDir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			_ = a.Close(ctx)
			return nil, err
		}
		log.WithField("dir", cfg.Catalog.ImageDir).Warn("image directory missing, every image request will 404")
	} else {
		log.WithFields(logrus.Fields{"dir": cfg.Catalog.ImageDir, "files": idx.Len()}).Info("image directory ready")
	}

	a.router = newRouter(cfg, log, Deps{
		Cereals:  repo.NewPGCerealRepo(db),
		Users:    repo.NewPGUserRepo(db),
		Sessions: sessions,
	})
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.pool != nil {
		a.pool.Close()
	}
	return errors.Join(errs...)
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newRouter(cfg config.Config, log logrus.FieldLogger, d Deps) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logging.Gin(log), gin.Recovery())

	// Session cookies need credentialed CORS, which rules out a literal "*" origin.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cookie"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	Setup(r, cfg, d)
	return r
}

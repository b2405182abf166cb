package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections. Redis is nil when REDIS_URL is unset.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client

	log *zap.Logger
}

// InitDB opens and pings every configured store
func InitDB(ctx context.Context, cfg *Config, log *zap.Logger) (*DB, error) {
	if cfg.PostgresConnStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	db := &DB{log: log}

	var err error
	if db.Postgres, err = initPostgres(cfg.PostgresConnStr, cfg.IsProduction()); err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Info("connected to PostgreSQL")

	if db.Mongo, err = initMongo(ctx, cfg.MongoURI); err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info("connected to MongoDB")

	if cfg.RedisURL != "" {
		if db.Redis, err = initRedis(ctx, cfg.RedisURL); err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("connected to Redis")
	}

	return db, nil
}

// initPostgres opens the GORM connection. TranslateError makes unique
// violations surface as gorm.ErrDuplicatedKey.
func initPostgres(connStr string, quiet bool) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true}
	if quiet {
		gcfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	db, err := gorm.Open(postgres.Open(connStr), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func initRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Checks returns readiness checks for the open connections
func (db *DB) Checks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.Postgres.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"mongo": func(ctx context.Context) error {
			return db.Mongo.Ping(ctx, nil)
		},
	}
	if db.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return db.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		if sqlDB, err := db.Postgres.DB(); err != nil {
			db.log.Warn("get sql.DB from gorm", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.log.Warn("close PostgreSQL", zap.Error(err))
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.Warn("close MongoDB", zap.Error(err))
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			db.log.Warn("close Redis", zap.Error(err))
		}
	}
	db.log.Info("database connections closed")
}

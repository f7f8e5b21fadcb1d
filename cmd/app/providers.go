package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/finvero/faqbot/internal/bootstrap"
	"github.com/finvero/faqbot/internal/domain/faq"
	"github.com/finvero/faqbot/internal/infra/config"
	"github.com/finvero/faqbot/internal/infra/kbsource"
	"github.com/finvero/faqbot/internal/infra/matchlog"
	"github.com/finvero/faqbot/internal/infra/trendstore"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		SimilarityThreshold: cfg.FAQ.SimilarityThreshold,
		MaxVocabulary:       cfg.FAQ.MaxVocabulary,
		TopSearchResults:    cfg.FAQ.TopSearchResults,
		TrendingLimit:       cfg.FAQ.TrendingLimit,
	}
}

// providePostgresPool returns a ready pool, or nil when no DSN is
// configured. A configured but unreachable database fails startup.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	dsn := strings.TrimSpace(cfg.FAQ.Postgres.DSN)
	if dsn == "" {
		return nil, nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.FAQ.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.FAQ.Postgres.MaxConns
	}
	if cfg.FAQ.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.FAQ.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	logger.Info("postgres pool ready")
	return pool, nil
}

func provideKBSource(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (faq.Source, error) {
	if pool != nil {
		logger.Info("knowledge base source: postgres")
		return kbsource.NewPostgres(pool), nil
	}
	if strings.TrimSpace(cfg.FAQ.Object.Endpoint) != "" {
		src, err := kbsource.NewObject(kbsource.ObjectConfig{
			Endpoint:  cfg.FAQ.Object.Endpoint,
			AccessKey: cfg.FAQ.Object.AccessKey,
			SecretKey: cfg.FAQ.Object.SecretKey,
			Bucket:    cfg.FAQ.Object.Bucket,
			Key:       cfg.FAQ.Object.Key,
			Region:    cfg.FAQ.Object.Region,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("knowledge base source: object storage", "bucket", cfg.FAQ.Object.Bucket, "key", cfg.FAQ.Object.Key)
		return src, nil
	}
	logger.Info("knowledge base source: file", "path", cfg.FAQ.FilePath)
	return kbsource.NewFile(cfg.FAQ.FilePath), nil
}

func provideEventSink(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*matchlog.Async, error) {
	var base faq.EventSink
	if pool != nil {
		pg, err := matchlog.NewPostgres(pool, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("match log sink: postgres")
		base = pg
	} else {
		base = matchlog.NewMemory(0)
	}
	return matchlog.NewAsync(base, cfg.FAQ.MatchLogBuffer, logger), nil
}

func provideTrendStore(cfg *config.Config, logger *slog.Logger) faq.TrendStore {
	if cfg.FAQ.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return trendstore.NewMemory()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return trendstore.NewMemory()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("trending store: valkey", "addr", cfg.FAQ.Valkey.Addr)
			return trendstore.NewValkey(client, cfg.FAQ.Valkey.Prefix)
		}
	}
	return trendstore.NewMemory()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.FAQ.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.FAQ.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.FAQ.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideCleanup(events *matchlog.Async, pool *pgxpool.Pool) bootstrap.Cleanup {
	return func() {
		events.Close()
		if pool != nil {
			pool.Close()
		}
	}
}

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/finvero/faqbot/internal/bootstrap"
	"github.com/finvero/faqbot/internal/domain/faq"
	"github.com/finvero/faqbot/internal/infra/config"
	"github.com/finvero/faqbot/internal/infra/matchlog"
	httpiface "github.com/finvero/faqbot/internal/interface/http"
	"github.com/finvero/faqbot/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		providePostgresPool,
		provideKBSource,
		provideEventSink,
		provideTrendStore,
		provideCleanup,
		faq.NewService,
		wire.Bind(new(faq.EventSink), new(*matchlog.Async)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

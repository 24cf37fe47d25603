package di

import (
	"riverside/config"
	"riverside/infras/kafka"
	"riverside/infras/otel"
	"riverside/internal/domains/booking/confirmer"
	"riverside/internal/domains/booking/repository"
	"riverside/shared/timezone"
	"riverside/transport/http"
)

// App is everything main needs to run and stop the service.
type App struct {
	Config *config.Config
	HTTP   *http.HTTP
	Drafts repository.Drafts
	Audit  *confirmer.Audit
	Kafka  kafka.Client
	Otel   otel.Otel
}

func provideDrafts(cfg *config.Config) repository.Drafts {
	return repository.NewDrafts(cfg.DraftTTL(), timezone.Now)
}

func provideAudit(cfg *config.Config, client kafka.Client, ot otel.Otel) *confirmer.Audit {
	return confirmer.NewAudit(client, ot, cfg.Kafka.ConsumerGroup, cfg.Kafka.ConfirmationTopic)
}

package main

import (
	"foamparty/internal/leads/flow"
	"foamparty/internal/leads/form"
	leadHandler "foamparty/internal/leads/handler"
	"foamparty/internal/leads/notify"
	"foamparty/internal/leads/relay"
	"foamparty/internal/leads/repository"
	"foamparty/internal/leads/validator"
	"foamparty/internal/metrics"
	offerHandler "foamparty/internal/offer/handler"
	offerRepository "foamparty/internal/offer/repository"
	offerService "foamparty/internal/offer/service"
	"foamparty/pkg/app"
	"foamparty/pkg/config"
	"foamparty/pkg/kafka"
	kafka_config "foamparty/pkg/kafka/config"
	kafka_middleware "foamparty/pkg/kafka/middleware"
	"foamparty/pkg/model"
	"foamparty/pkg/sanitizer"

	"github.com/prometheus/client_golang/prometheus"
)

const ServiceName = "leads"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Leads service")

	serverApp := app.NewApplication(cfg)
	appMetrics := metrics.New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	leadRepo := initLeadRepository(cfg, serverApp)
	leadFlow := initFlow(cfg, serverApp, leadRepo, appMetrics)
	bookingValidator := validator.NewBookingValidator(cfg.Location(), nil, cfg.Log)
	newForm := func() *form.Form {
		return form.New(leadFlow, bookingValidator)
	}

	offerRepo := initOfferRepository(cfg)
	offers := offerService.NewOfferService(offerRepo, cfg.OfferDuration, nil, cfg.Log)

	healthHandler := leadHandler.NewHealthHandler(map[string]leadHandler.Pinger{
		"leads":  leadRepo,
		"offers": offerRepo,
	}, cfg.Log)

	serverApp.SetApp(healthHandler, appMetrics,
		leadHandler.NewLeadHandler(newForm, leadRepo, contactInfo(cfg), cfg.Log),
		offerHandler.NewOfferHandler(offers, cfg.Log),
	)
	serverApp.Run()
}

func initLeadRepository(cfg *config.Config, serverApp *app.Application) repository.LeadRepository {
	switch cfg.LeadStore {
	case config.LeadStoreMongo:
		cfg.SetMongo()
		cfg.Log.Info("Lead store initialized", "store", cfg.LeadStore, "database", cfg.MongoDatabaseName)
		return repository.NewMongoLeadRepository(cfg)

	case config.LeadStoreMemory:
		cfg.Log.Warn("Lead store is in memory, leads are lost on restart")
		return repository.NewMemoryLeadRepository()

	default:
		db, err := repository.OpenBadger(cfg.BadgerPath, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to open lead store", "error", err, "path", cfg.BadgerPath)
		}
		serverApp.OnShutdown(func() {
			if err := db.Close(); err != nil {
				cfg.Log.Error("Failed to close lead store", "error", err)
			}
		})
		cfg.Log.Info("Lead store initialized", "store", cfg.LeadStore, "path", cfg.BadgerPath, "key", cfg.LeadStorageKey)
		return repository.NewBadgerLeadRepository(db, cfg.LeadStorageKey, cfg.Log)
	}
}

func initFlow(cfg *config.Config, serverApp *app.Application, leadRepo repository.LeadRepository, observer flow.Observer) *flow.Flow {
	leadFlow := flow.New(flow.Config{
		Inbox:         cfg.BookingsInbox,
		BusinessPhone: cfg.BusinessPhone,
		BusinessEmail: cfg.BusinessEmail,
	}, flow.Channels{
		Store:    leadRepo,
		Mail:     notify.NewMailCompose(cfg.BookingsInbox, initOpener(cfg)),
		Relay:    relay.NewClient(cfg.RelayURL, cfg.RelayTimeout, cfg.Log.Component("relay")),
		Share:    initShare(cfg, serverApp),
		Observer: observer,
	}, cfg.Log.Component("flow"))

	serverApp.OnShutdown(leadFlow.Wait)
	cfg.Log.Info("Lead flow initialized", "relay_url", cfg.RelayURL, "share_enabled", cfg.ShareEnabled)
	return leadFlow
}

func initOpener(cfg *config.Config) notify.Opener {
	if !cfg.SMTPEnabled {
		return notify.NewLogOpener(cfg.Log.Component("mail"))
	}
	return notify.NewSMTPOpener(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, cfg.Log.Component("mail"))
}

// initShare returns nil when sharing is disabled so the flow skips the step.
func initShare(cfg *config.Config, serverApp *app.Application) flow.Notifier {
	if !cfg.ShareEnabled {
		return nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ShareTopic, kafkaCfg.DLQTopic, cfg.Log.Component("kafka"))
	if err != nil {
		cfg.Log.Fatal("Failed to create share producer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		producerMetrics := kafka_middleware.NewMetrics()
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(producerMetrics.ProducerMiddleware())
		serverApp.OnShutdown(func() { producerMetrics.Log(cfg.Log) })
	}

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close share producer", "error", err)
		}
	})

	return notify.NewShare(cfg.SiteURL, notify.NewKafkaSharer(producer))
}

func initOfferRepository(cfg *config.Config) offerRepository.OfferRepository {
	if cfg.OfferStore == config.OfferStoreRedis {
		cfg.SetRedis()
		return offerRepository.NewRedisOfferRepository(cfg.Client.Redis)
	}
	return offerRepository.NewMemoryOfferRepository()
}

func contactInfo(cfg *config.Config) model.ContactInfo {
	return model.ContactInfo{
		Phone:       cfg.BusinessPhone,
		TelURI:      sanitizer.TelURI(cfg.BusinessPhone),
		Email:       cfg.BusinessEmail,
		ServiceArea: cfg.ServiceArea,
		Options:     model.DefaultFormOptions(),
	}
}

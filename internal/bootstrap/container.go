package bootstrap

import (
	"context"
	"log"
	"time"

	"foodiebot-be/internal/config"
	"foodiebot-be/internal/controller"
	"foodiebot-be/internal/pkg/logger"
	"foodiebot-be/internal/repository/contract"
	"foodiebot-be/internal/repository/memory"
	redisrepo "foodiebot-be/internal/repository/redis"
	"foodiebot-be/internal/repository/unitofwork"
	"foodiebot-be/internal/service"
	"foodiebot-be/pkg/affinity"
	"foodiebot-be/pkg/intent"
	"foodiebot-be/pkg/intent/llmparser"
	"foodiebot-be/pkg/llm/factory"
	"foodiebot-be/pkg/scoring"
	"foodiebot-be/pkg/session"

	pktNats "foodiebot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	RecommendController controller.IRecommendController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	AffinityScheduler *affinity.Scheduler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional: the consumer skips forwarding when it is nil.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Session Storage
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessionRepo contract.SessionRepository
	if cfg.Session.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(rdb, sessionTTL)
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}
	sessions := session.NewManager(sessionRepo, cfg.Session.NonEmptyIncrement, cfg.Session.EmptyDecrement)

	// 4. Intent Extraction
	// The external parser is optional; rule extraction alone is a full
	// implementation of the turn contract.
	var parser intent.Parser
	if cfg.Ai.ParserProvider != "" {
		llmProvider, err := factory.NewLLMProvider(
			cfg.Ai.ParserProvider,
			cfg.Ai.ParserModel,
			cfg.Ai.OllamaBaseURL,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize intent parser provider, falling back to rules: %v", err)
		} else {
			parser = llmparser.New(llmProvider)
			log.Printf("[INFO] Using Intent Parser: %s (%s)", cfg.Ai.ParserProvider, cfg.Ai.ParserModel)
		}
	}
	extractor := intent.NewExtractor(parser, time.Duration(cfg.Ai.ParserTimeout)*time.Millisecond)

	// 5. Collaborative Signal
	builder := affinity.NewBuilder(uowFactory, cfg.Affinity.ShownWeight, cfg.Affinity.Shrinkage)
	scheduler := affinity.NewScheduler(builder, cfg.Affinity.RebuildSchedule)

	// 6. Scoring Engine
	engine := scoring.NewEngine(scoring.Weights{
		Preference:     cfg.Scoring.PreferenceWeight,
		Budget:         cfg.Scoring.BudgetWeight,
		Collaborative:  cfg.Scoring.CollaborativeWeight,
		CuratedBonus:   cfg.Scoring.CuratedBonus,
		NoveltyPenalty: cfg.Scoring.NoveltyPenalty,
	}, builder)

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.Topic,
		uowFactory,
		natsPub,
	)

	recommendationService := service.NewRecommendationService(
		uowFactory,
		extractor,
		sessions,
		engine,
		publisherService,
		sysLogger,
		cfg.Scoring.ResultLimit,
		time.Duration(cfg.Events.PublishTimeoutMs)*time.Millisecond,
	)

	// 8. Controllers
	return &Container{
		ChatController:      controller.NewChatController(recommendationService),
		RecommendController: controller.NewRecommendController(recommendationService),

		ConsumerService:   consumerService,
		AffinityScheduler: scheduler,
	}
}

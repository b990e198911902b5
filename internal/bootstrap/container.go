package bootstrap

import (
	"context"
	"log"
	"time"

	"adminboard-be/internal/config"
	"adminboard-be/internal/controller"
	"adminboard-be/internal/pkg/logger"
	"adminboard-be/internal/repository/unitofwork"
	"adminboard-be/internal/service"
	"adminboard-be/pkg/directory"
	pktNats "adminboard-be/pkg/nats"
	"adminboard-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const dispatchTopic = "DISPATCH_NOTIFICATION"

// Container wires every collaborator explicitly: services receive their
// stores, resolver inputs and directories from here, never via lookups.
type Container struct {
	NotificationController controller.INotificationController
	PreferenceController   controller.IPreferenceController

	// Background services (exposed for main.go to run)
	DispatchService service.IDispatchService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process dispatch bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS event bus (cross-service consumers: mailers, push gateways)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis unread-count cache
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
	unreadCache := store.NewUnreadCache(rdb, time.Duration(cfg.Cache.UnreadTTLSeconds)*time.Second)

	// User directory: local mirror behind an in-process lookup cache
	userDirectory := directory.NewCachedDirectory(
		directory.NewGormDirectory(uowFactory),
		time.Duration(cfg.Directory.LookupTTLSeconds)*time.Second,
	)

	dispatchQueue := service.NewDispatchQueue(dispatchTopic, pubSub)
	dispatchLogger := logger.NewIsolatedLogger("logs/dispatch.log")
	dispatchService := service.NewDispatchService(pubSub, dispatchTopic, uowFactory, dispatchLogger)

	notificationService := service.NewNotificationService(
		uowFactory,
		userDirectory,
		dispatchQueue,
		natsPub,
		unreadCache,
		sysLogger,
	)
	preferenceService := service.NewPreferenceService(uowFactory, natsPub, sysLogger)

	// Durable audit trail of the event stream
	auditLogger := logger.NewIsolatedLogger("logs/events.log")
	auditService := service.NewAuditService(natsSub, auditLogger)
	if natsSub != nil {
		go auditService.Start()
	}

	return &Container{
		NotificationController: controller.NewNotificationController(notificationService),
		PreferenceController:   controller.NewPreferenceController(preferenceService),
		DispatchService:        dispatchService,
		Logger:                 sysLogger,
	}
}

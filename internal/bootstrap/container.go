package bootstrap

import (
	"context"

	"advocate-portal-client/internal/config"
	"advocate-portal-client/internal/controller"
	"advocate-portal-client/internal/gateway"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/internal/repository/implementation"
	"advocate-portal-client/internal/repository/memory"
	"advocate-portal-client/internal/service"
	"advocate-portal-client/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	Gateway *gateway.Client

	SessionService    service.ISessionService
	DocumentService   service.IDocumentService
	NavigationService service.INavigationService

	LoginController     controller.ILoginController
	UploadController    controller.IUploadController
	AssistantController controller.IAssistantController

	pubSub *gochannel.GoChannel
}

func NewContainer(cfg *config.Config, log logger.ILogger) *Container {
	// 1. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2. Gateway + stores
	gw := gateway.NewClient(cfg.Portal.BaseURL, cfg.Portal.RequestTimeout, cfg.Upload.Timeout, log)
	tokenRepo := implementation.NewFileTokenRepository(cfg.Portal.TokenPath)
	documentCache := memory.NewDocumentCache()

	// 3. Services
	sessionService := service.NewSessionService(gw, tokenRepo, pubSub, cfg.Portal.AccountEmail, log)
	documentService := service.NewDocumentService(gw, sessionService, documentCache, log)
	navigationService := service.NewNavigationService()

	// A 401 on any authenticated exchange is an implicit sign-out, no matter
	// which operation observed it.
	gw.SetOnUnauthorized(sessionService.ObserveUnauthorized)

	// 4. Controllers
	loginController := controller.NewLoginController(sessionService, log)
	uploadController := controller.NewUploadController(gw, sessionService, pubSub, log)
	assistantController := controller.NewAssistantController(gw, log)

	return &Container{
		Config:              cfg,
		Logger:              log,
		Gateway:             gw,
		SessionService:      sessionService,
		DocumentService:     documentService,
		NavigationService:   navigationService,
		LoginController:     loginController,
		UploadController:    uploadController,
		AssistantController: assistantController,
		pubSub:              pubSub,
	}
}

// Start wires the event subscriptions. Navigation and the document repository
// subscribe independently; neither knows the other reacts to the same events.
// Must run before Bootstrap or any sign-in so no event is published into the
// void.
func (c *Container) Start(ctx context.Context) error {
	// Session became active: navigation returns to the default view and the
	// collection is fetched automatically.
	if err := c.subscribe(ctx, events.TopicSessionEstablished, func(e events.BaseEvent) {
		c.NavigationService.Reset()
	}); err != nil {
		return err
	}
	if err := c.subscribe(ctx, events.TopicSessionEstablished, func(e events.BaseEvent) {
		if err := c.DocumentService.Refresh(ctx); err != nil {
			c.Logger.Warn("bootstrap", "initial refresh failed", map[string]interface{}{"error": err.Error()})
		}
	}); err != nil {
		return err
	}

	// Upload finished: back to the list, then re-fetch so the new document
	// shows up.
	if err := c.subscribe(ctx, events.TopicUploadCompleted, func(e events.BaseEvent) {
		c.NavigationService.Select(service.ViewList)
	}); err != nil {
		return err
	}
	if err := c.subscribe(ctx, events.TopicUploadCompleted, func(e events.BaseEvent) {
		if err := c.DocumentService.Refresh(ctx); err != nil {
			c.Logger.Warn("bootstrap", "post-upload refresh failed", map[string]interface{}{"error": err.Error()})
		}
	}); err != nil {
		return err
	}

	// Credential revoked: documents of that identity must not outlive it.
	return c.subscribe(ctx, events.TopicSessionRevoked, func(e events.BaseEvent) {
		c.DocumentService.HandleSessionRevoked()
	})
}

func (c *Container) subscribe(ctx context.Context, topic string, handler func(events.BaseEvent)) error {
	messages, err := c.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}
	go c.consume(messages, topic, handler)
	return nil
}

func (c *Container) consume(messages <-chan *message.Message, topic string, handler func(events.BaseEvent)) {
	for msg := range messages {
		e, err := events.Decode(msg)
		if err != nil {
			c.Logger.Error("bootstrap", "failed to decode event", map[string]interface{}{
				"topic": topic,
				"error": err.Error(),
			})
			msg.Ack() // malformed messages are dropped, not retried
			continue
		}
		handler(e)
		msg.Ack()
	}
}

func (c *Container) Close() error {
	if err := c.pubSub.Close(); err != nil {
		return err
	}
	return c.Logger.Sync()
}

// Package main provides the Draftflow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/draftflow/draftflow/pkg/ai"
	"github.com/draftflow/draftflow/pkg/conversation"
	"github.com/draftflow/draftflow/pkg/eventbus"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/draftflow/draftflow/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger       *slog.Logger
	persistence  persistence.Persistence
	eventBus     eventbus.EventBus
	aiServiceURL string
	validate     *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
	aiServiceURL string,
) *API {
	return &API{
		logger:       logger,
		persistence:  persistence,
		eventBus:     eventBus,
		aiServiceURL: aiServiceURL,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	opts := []conversation.Option{
		conversation.WithPersister(persistence.NewFireAndForget(a.persistence, a.logger)),
	}

	if a.eventBus != nil {
		opts = append(opts, conversation.WithEventBus(a.eventBus))
	}

	if a.aiServiceURL != "" {
		client := ai.NewClient(a.aiServiceURL)
		opts = append(opts,
			conversation.WithChatService(client),
			conversation.WithFallbackServices(client, client),
		)
	}

	engine := conversation.NewEngine(a.logger, opts...)
	handlers := web.NewAPIHandlers(engine, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Draftflow API")
	})

	handlers.Register(app)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}

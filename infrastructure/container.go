package infrastructure

import (
	"context"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/eshopteam/zohoserver/config"
	infraredis "github.com/eshopteam/zohoserver/infrastructure/redis"
	"github.com/eshopteam/zohoserver/internal/auth"
	"github.com/eshopteam/zohoserver/internal/contact"
	"github.com/eshopteam/zohoserver/internal/item"
	"github.com/eshopteam/zohoserver/internal/order"
	"github.com/eshopteam/zohoserver/internal/organization"
	"github.com/eshopteam/zohoserver/pkg/zohoclient"
)

const redisHealthCheckInterval = 30 * time.Second

// Container holds all application dependencies.
type Container struct {
	Logger      *zap.Logger
	RedisClient goredis.UniversalClient
	RedisHealth *infraredis.HealthChecker
	TokenStore  *auth.FallbackTokenStore
	ZohoClient  *zohoclient.Client

	AuthService         *auth.Service
	ItemService         *item.Service
	ContactService      *contact.Service
	OrganizationService *organization.Service
	Orchestrator        *order.Orchestrator

	AuthHandler         *auth.Handler
	ItemHandler         *item.Handler
	ContactHandler      *contact.Handler
	OrganizationHandler *organization.Handler
	OrderHandler        *order.Handler
}

// NewContainer wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Container {
	redisConfig := infraredis.DefaultConfig()
	redisConfig.Addresses = cfg.Redis.Addresses
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB
	redisConfig.EnableTLS = cfg.Redis.EnableTLS

	redisClient := infraredis.NewUniversalClient(redisConfig)
	health := infraredis.NewHealthChecker(redisClient, redisHealthCheckInterval, logger.Named("redis"))

	tokenStore := auth.NewFallbackTokenStore(redisClient, cfg.Redis.KeyPrefix, health.IsHealthy, logger.Named("tokenstore"))
	tokenStore.StartReplicationRoutine(ctx)

	auth.InitSessionStore([]byte(cfg.Session.Secret))

	authService := auth.NewService(auth.OAuthConfig{
		ClientID:       cfg.Zoho.ClientID,
		ClientSecret:   cfg.Zoho.ClientSecret,
		RedirectURI:    cfg.Zoho.RedirectURI,
		AccountsDomain: cfg.Zoho.AccountsDomain,
	}, tokenStore, logger.Named("auth"))

	zohoClient := zohoclient.NewClient(cfg.Zoho.APIDomain, cfg.Zoho.OrganizationID, authService, logger.Named("zoho"))

	itemService := item.NewService(zohoClient, logger.Named("item"))
	contactService := contact.NewService(zohoClient, logger.Named("contact"))
	organizationService := organization.NewService(zohoClient, logger.Named("organization"))
	orchestrator := order.NewOrchestrator(zohoClient, itemService, cfg.Zoho.DefaultVendorID, logger.Named("order"))

	return &Container{
		Logger:      logger,
		RedisClient: redisClient,
		RedisHealth: health,
		TokenStore:  tokenStore,
		ZohoClient:  zohoClient,

		AuthService:         authService,
		ItemService:         itemService,
		ContactService:      contactService,
		OrganizationService: organizationService,
		Orchestrator:        orchestrator,

		AuthHandler:         auth.NewHandler(authService, cfg.Zoho.FrontendURL, logger.Named("auth")),
		ItemHandler:         item.NewHandler(itemService),
		ContactHandler:      contact.NewHandler(contactService),
		OrganizationHandler: organization.NewHandler(organizationService),
		OrderHandler:        order.NewHandler(orchestrator),
	}
}

// Shutdown gracefully closes all container resources.
func (c *Container) Shutdown() {
	if err := c.RedisClient.Close(); err != nil {
		c.Logger.Warn("failed to close redis client", zap.Error(err))
	}
}

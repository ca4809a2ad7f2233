// api/routes/router.go
package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tvojakarta/docs"
	"tvojakarta/internal/cart"
	"tvojakarta/internal/catalog"
	"tvojakarta/internal/checkout"
	"tvojakarta/internal/notifications"
	"tvojakarta/internal/orders"
	"tvojakarta/internal/preferences"
	"tvojakarta/internal/pricing"
	"tvojakarta/internal/shared/config"
	"tvojakarta/internal/shared/database"
	"tvojakarta/internal/shared/middleware"
	"tvojakarta/pkg/cache"
	"tvojakarta/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	log    *logger.Logger

	// Built by SetupRoutes, shared across route groups
	catalogService catalog.Service
	prefService    preferences.Service
	resolver       catalog.LanguageResolver
	carts          *cart.Registry
	janitor        *cart.Janitor
	machines       *checkout.Machines
	checkout       checkout.Service
	publisher      notifications.Publisher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
		log:    logger.GetDefault(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath(), middleware.Session())
	{
		// Preferences first: every other group resolves the display language through them
		r.setupPreferenceRoutes(api)

		if err := r.setupCatalogRoutes(api); err != nil {
			return err
		}
		r.setupCartRoutes(api)

		orderService := r.setupOrderRoutes(api)
		if err := r.setupCheckoutRoutes(api, orderService); err != nil {
			return err
		}
	}
	return nil
}

// Start launches background jobs.
func (r *Router) Start(ctx context.Context) {
	if r.janitor != nil {
		r.janitor.Start(ctx)
	}
}

// Shutdown stops background jobs and waits for running payments.
func (r *Router) Shutdown(ctx context.Context) error {
	var errs []error
	if r.janitor != nil {
		r.janitor.Stop()
	}
	if r.checkout != nil {
		if err := r.checkout.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("checkout shutdown: %w", err))
		}
	}
	if r.publisher != nil {
		if err := r.publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tvojakarta-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tvojakarta-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		status := gin.H{
			"status":         "operational",
			"api_version":    r.config.APIVersion,
			"catalog_source": r.config.Catalog.Source,
			"postgres":       r.db.PostgreSQL != nil,
			"redis":          r.db.Redis != nil,
			"kafka":          r.config.Kafka.Enabled,
			"timestamp":      time.Now(),
		}
		if r.carts != nil {
			status["active_carts"] = r.carts.Len()
		}
		if r.machines != nil {
			status["active_checkouts"] = r.machines.Len()
		}
		c.JSON(http.StatusOK, status)
	})
}

// setupPreferenceRoutes configures language and cookie preference routes
func (r *Router) setupPreferenceRoutes(rg *gin.RouterGroup) {
	var kv preferences.KV = preferences.NewMemoryKV()
	if r.config.Preferences.Backend == "redis" {
		if r.db.Redis != nil {
			kv = preferences.NewRedisKV(r.db.Redis, r.config.Preferences.TTL)
		} else {
			r.log.Warn("Preferences backend is redis but Redis is disabled, keeping preferences in memory")
		}
	}

	r.prefService = preferences.NewService(kv)
	r.resolver = preferences.LanguageResolver(r.prefService)

	preferences.SetupPreferenceRoutes(rg, preferences.NewController(r.prefService))
}

// setupCatalogRoutes configures event listing routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) error {
	var repo catalog.Repository
	switch r.config.Catalog.Source {
	case "postgres":
		if r.db.PostgreSQL == nil {
			return errors.New("catalog source is postgres but the database is disabled")
		}
		repo = catalog.NewPostgresRepository(r.db.PostgreSQL)
	default:
		events, err := catalog.DefaultEvents()
		if err != nil {
			return fmt.Errorf("failed to load bundled catalog: %w", err)
		}
		repo = catalog.NewStaticRepository(events)
	}

	r.catalogService = catalog.NewService(repo)

	// Inject cache service dependency
	if r.db.Redis != nil {
		r.catalogService.SetCacheService(cache.NewService(r.db.Redis))
	}

	catalog.SetupCatalogRoutes(rg, catalog.NewController(r.catalogService, r.resolver))
	return nil
}

// setupCartRoutes configures session cart routes
func (r *Router) setupCartRoutes(rg *gin.RouterGroup) {
	r.carts = cart.NewRegistry(r.config.Cart.SessionIdleTTL)
	r.janitor = cart.NewJanitor(r.carts, r.config.Cart.SweepInterval)

	cartService := cart.NewService(r.carts, r.catalogService, r.policy())
	cart.SetupCartRoutes(rg, cart.NewController(cartService, r.resolver, r.config.Cart.MaxQuantityPerAdd))
}

// setupOrderRoutes configures order history routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) orders.Service {
	var repo orders.Repository
	if r.db.PostgreSQL != nil {
		repo = orders.NewRepository(r.db.PostgreSQL)
	} else {
		repo = orders.NewMemoryRepository()
	}

	orderService := orders.NewService(repo)
	orders.SetupOrderRoutes(rg, orders.NewController(orderService, r.resolver))
	return orderService
}

// setupCheckoutRoutes configures payment routes
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup, orderService orders.Service) error {
	r.machines = checkout.NewMachines()
	r.carts.OnEvict(r.machines.Forget)

	gateway := checkout.NewSimulatedGateway(r.config.Payment.SimulatedDelay)
	r.checkout = checkout.NewService(r.carts, r.machines, gateway, orderService, r.policy())

	if r.config.Kafka.Enabled {
		producerCfg := notifications.DefaultProducerConfig()
		producerCfg.Brokers = r.config.Kafka.Brokers
		producerCfg.Topic = r.config.Kafka.OrderTopic

		publisher, err := notifications.NewKafkaPublisher(producerCfg)
		if err != nil {
			return err
		}
		r.publisher = publisher
	} else {
		r.publisher = notifications.NewNoopPublisher()
	}
	r.checkout.SetPublisher(r.publisher)

	checkout.SetupCheckoutRoutes(rg, checkout.NewController(r.checkout, r.resolver))
	return nil
}

func (r *Router) policy() pricing.Policy {
	return pricing.Policy{
		ServiceFeePermille: r.config.Pricing.ServiceFeePermille,
		ProcessingFee:      r.config.Pricing.ProcessingFee,
	}
}

package provider

import (
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/catalog"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"
	"github.com/storefront-next/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// 基础设施
	Store kv.Store

	// Services
	Catalog   catalog.Service
	Orders    *service.OrderService
	Confirmer service.PaymentConfirmer
	Sessions  *session.Manager
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	c.initStore()
	c.initServices()

	return c
}

func (c *Container) initStore() {
	if c.Config.Persistence.Driver == constants.PersistenceDriverRedis {
		store, err := kv.NewRedisStore(cache.Client(), c.Config.Redis.Prefix)
		if err == nil {
			c.Store = store
			logger.Infow("persistence_store_ready", "driver", constants.PersistenceDriverRedis)
			return
		}
		logger.Warnw("persistence_redis_unavailable", "error", err, "fallback", constants.PersistenceDriverDatabase)
	}
	c.Store = kv.NewGormStore(models.DB)
	logger.Infow("persistence_store_ready", "driver", constants.PersistenceDriverDatabase)
}

func (c *Container) initServices() {
	var cat catalog.Service = catalog.NewGormCatalog(models.DB)
	if cache.Enabled() {
		cat = catalog.NewCachedCatalog(cat, 5*time.Minute)
	}
	c.Catalog = cat

	c.Orders = service.NewOrderService(c.Store)
	if c.Config.Checkout.AutoConfirmPayments {
		c.Confirmer = service.NewAutoConfirmer()
	} else {
		// 人工确认模式：订单保持 pending，由管理端推进
		c.Confirmer = &service.StaticConfirmer{Status: constants.PaymentStatusPending}
	}
	c.Sessions = session.NewManager(c.Store, c.Orders, c.Confirmer)
}

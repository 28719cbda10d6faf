package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"
	"storefront/internal/cartstore"
	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	dashboardsvc "storefront/internal/service/dashboard"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

type AccountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Account, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Account, error)
	AccessTTLSeconds() int
}

type ProductService interface {
	StoreProducts(ctx context.Context, store, category string, page int) (domain.Page[domain.Product], error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	SellerProducts(ctx context.Context, seller domain.Identity, page int) (domain.Page[domain.Product], error)
	Create(ctx context.Context, seller domain.Identity, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, seller domain.Identity, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, seller domain.Identity, id string) error
}

type CategoryService interface {
	SearchStores(ctx context.Context, q string) ([]domain.Category, error)
	List(ctx context.Context, store string) ([]domain.Category, error)
	Create(ctx context.Context, seller domain.Identity, name string) (*domain.Category, error)
}

type CartStore interface {
	Load(ctx context.Context, session string) (domain.Cart, error)
	AddOrIncrement(ctx context.Context, session string, p domain.Product) (domain.Cart, cartstore.Outcome, error)
	Remove(ctx context.Context, session, id string) (domain.Cart, error)
}

type OrderService interface {
	Submit(ctx context.Context, session string) (string, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Revise(ctx context.Context, orderID string, patch ordersvc.Patch) (*domain.Order, error)
}

type DashboardService interface {
	Orders(ctx context.Context, seller domain.Identity, page int) (dashboardsvc.OrdersPage, error)
	Logistics(ctx context.Context, seller domain.Identity) ([]domain.Logistics, error)
}

// Deps bundles the services the router needs.
type Deps struct {
	AccountSvc   AccountService
	ProductSvc   ProductService
	CategorySvc  CategoryService
	Carts        CartStore
	OrderSvc     OrderService
	DashboardSvc DashboardService
	CartTTL      time.Duration
	CORSOrigins  []string
	// Tracing overrides the global tracer provider for request spans.
	Tracing      trace.TracerProvider
}

func (d Deps) validate() error {
	switch {
	case d.AccountSvc == nil:
		return errors.New("httpserver: account service required")
	case d.ProductSvc == nil:
		return errors.New("httpserver: product service required")
	case d.CategorySvc == nil:
		return errors.New("httpserver: category service required")
	case d.Carts == nil:
		return errors.New("httpserver: cart store required")
	case d.OrderSvc == nil:
		return errors.New("httpserver: order service required")
	case d.DashboardSvc == nil:
		return errors.New("httpserver: dashboard service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.CartTTL <= 0 {
		deps.CartTTL = 30 * 24 * time.Hour
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), routeSpan())
	if len(deps.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = deps.CORSOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AddAllowHeaders("Authorization", cartHeader)
		corsCfg.AddExposeHeaders(cartHeader)
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{logger: logger, deps: deps}

	router.POST("/auth/signup", h.signup)
	router.POST("/auth/token", h.token)

	api := router.Group("/", authMiddleware(h))
	api.GET("/stores", h.searchStores)
	api.GET("/stores/:store/products", h.storeProducts)

	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addCartItem)
	api.DELETE("/cart/items/:id", h.removeCartItem)

	api.POST("/checkout", h.checkout)
	api.GET("/orders/:id", h.getOrder)
	api.PATCH("/orders/:id", h.reviseOrder)

	seller := api.Group("/", requireSeller(h))
	seller.GET("/dashboard/orders", h.dashboardOrders)
	seller.GET("/dashboard/logistics", h.dashboardLogistics)
	seller.GET("/seller/products", h.sellerProducts)
	seller.POST("/seller/products", h.createProduct)
	seller.PUT("/seller/products/:id", h.updateProduct)
	seller.DELETE("/seller/products/:id", h.deleteProduct)
	seller.POST("/seller/categories", h.createCategory)

	return router, nil
}

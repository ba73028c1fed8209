package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/orderservice/internal/metrics"
	"github.com/polkiloo/orderservice/internal/server/http/handlers"
	"github.com/polkiloo/orderservice/internal/server/http/middleware"
)

const metricsPath = "/metrics"

type routerParams struct {
	fx.In

	Facade  handlers.ServiceFacade
	Metrics *metrics.Metrics `optional:"true"`
	Logger  *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Metrics, p.Logger)
}

// Setup configures gin router with handlers and middleware.
// Metrics endpoint is mounted only when m is not nil.
func Setup(facade handlers.ServiceFacade, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths([]string{metricsPath}),
	))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Live)
	engine.GET("/readyz", healthHandler.Ready)
	if m != nil {
		engine.GET(metricsPath, gin.WrapH(m.Handler()))
	}

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.POST("/create", orderHandler.Create)
	orders.POST("/product", productHandler.PlaceOrder)
	orders.GET("/order/:orderId", orderHandler.Get)
	orders.GET("/order/:orderId/details", orderHandler.Details)
	orders.GET("/user/:userId", orderHandler.ListByUser)

	products := api.Group("/products")
	products.Use(middleware.AuthRequired(facade))
	products.GET("/:productId", productHandler.Get)

	return engine
}

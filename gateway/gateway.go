package gateway

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/joyashop/pkg/config"
	"github.com/example/joyashop/pkg/models"
	"github.com/example/joyashop/pkg/service"
)

type Gateway struct {
	config  *config.Config
	logger  *zap.Logger
	router  *gin.Engine
	catalog *service.CatalogService
	carts   *service.CartsService
	orders  *service.OrdersService
	users   *service.UsersService
}

func NewGateway(cfg *config.Config, logger *zap.Logger, catalog *service.CatalogService, carts *service.CartsService, orders *service.OrdersService, users *service.UsersService) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	return &Gateway{
		config:  cfg,
		logger:  logger,
		router:  router,
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		users:   users,
	}
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := g.router.Group("/products")
	{
		products.POST("", g.createProduct)
		products.GET("", g.listProducts)
		products.GET("/:id", g.getProduct)
		products.PATCH("/:id", g.updateProduct)
		products.DELETE("/:id", g.deleteProduct)
	}

	categories := g.router.Group("/categories")
	{
		categories.POST("", g.createCategory)
		categories.GET("", g.listCategories)
		categories.GET("/:id", g.getCategory)
		categories.PATCH("/:id", g.updateCategory)
		categories.DELETE("/:id", g.deleteCategory)
	}

	carts := g.router.Group("/carts")
	{
		carts.POST("", g.createCart)
		carts.GET("", g.listCarts)
		carts.GET("/:id", g.getCart)
		carts.PATCH("/:id", g.updateCart)
		carts.DELETE("/:id", g.deleteCart)
		carts.POST("/:id/add-product", g.addCartProduct)
		carts.DELETE("/:id/remove-product/:productId", g.removeCartProduct)
	}

	orders := g.router.Group("/orders")
	{
		orders.POST("", g.createOrder)
		orders.GET("", g.listOrders)
		orders.GET("/:id", g.getOrder)
		orders.GET("/user/:userId", g.listOrdersByUser)
		orders.PATCH("/:id", g.updateOrder)
		orders.DELETE("/:id", g.deleteOrder)
	}

	users := g.router.Group("/users")
	{
		users.POST("", g.createUser)
		users.GET("", g.listUsers)
		users.GET("/:id", g.getUser)
		users.PATCH("/:id", g.updateUser)
		users.DELETE("/:id", g.deleteUser)
	}

	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Start() error {
	addr := g.config.Server.Addr()
	g.logger.Info("HTTP server starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// Handler exposes the router for tests.
func (g *Gateway) Handler() http.Handler {
	return g.router
}

// respondError maps the shared error kinds onto HTTP statuses: NotFound
// becomes 404, InvalidInput 400, everything else 500.
func (g *Gateway) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		g.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseID rejects anything that is not a 24-hex-character document id.
func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(models.ErrInvalidInput, "invalid id %q", raw)
	}
	return id, nil
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

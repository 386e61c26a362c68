package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/domain/user"
	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"
	"storefront/internal/infra/mongodb"
	"storefront/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	conn *mongodb.Connection,
	categoryHandler *api.CategoryHandler,
	productHandler *api.ProductHandler,
	cartHandler *api.CartHandler,
	orderHandler *api.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, conn, categoryHandler, productHandler, cartHandler, orderHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	conn *mongodb.Connection,
	categoryHandler *api.CategoryHandler,
	productHandler *api.ProductHandler,
	cartHandler *api.CartHandler,
	orderHandler *api.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck(conn))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	category := engine.Group("/category")
	{
		addRoutes(category, []route{
			{Method: http.MethodGet, Path: "/list", Handler: categoryHandler.List},
		})

		categoryAdmin := category.Group("")
		categoryAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleSeller))
		addRoutes(categoryAdmin, []route{
			{Method: http.MethodPost, Path: "/list", Handler: categoryHandler.Action},
		})
	}

	product := engine.Group("/product")
	{
		addRoutes(product, []route{
			{Method: http.MethodGet, Path: "/list", Handler: productHandler.List},
			{Method: http.MethodGet, Path: "/:id", Handler: productHandler.Get},
		})
	}

	cart := engine.Group("/cart")
	cart.Use(authMiddleware.RequireAuth())
	{
		addRoutes(cart, []route{
			{Method: http.MethodGet, Path: "/get", Handler: cartHandler.Get},
			{Method: http.MethodPost, Path: "/add", Handler: cartHandler.Add},
			{Method: http.MethodPost, Path: "/update", Handler: cartHandler.Update},
		})

		cartAdmin := cart.Group("")
		cartAdmin.Use(authMiddleware.RequireRoleAtLeast(user.RoleSeller))
		addRoutes(cartAdmin, []route{
			{Method: http.MethodPost, Path: "/remove-deleted-product", Handler: cartHandler.RemoveDeletedProduct},
		})
	}

	order := engine.Group("/order")
	order.Use(authMiddleware.RequireAuth())
	{
		addRoutes(order, []route{
			{Method: http.MethodPost, Path: "/create", Handler: orderHandler.Create},
			{Method: http.MethodGet, Path: "/get-orders", Handler: orderHandler.GetOrders},
		})
	}

	// Same listing operation as /order/get-orders; the role gate guarantees
	// the all-orders branch of the read-time filter.
	seller := engine.Group("/seller")
	seller.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleSeller))
	{
		addRoutes(seller, []route{
			{Method: http.MethodGet, Path: "/orders", Handler: orderHandler.GetOrders},
		})
	}
}

// @Summary Health check
// @Description Report service health and database connection state
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func healthCheck(conn *mongodb.Connection) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := conn.Status()
		httpStatus := http.StatusOK
		if status.State != mongodb.StateConnected {
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, gin.H{
			"status":   string(status.State),
			"database": status,
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

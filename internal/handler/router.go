package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"unicart/internal/handler/api"
	"unicart/internal/handler/middleware"
	"unicart/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Cart     *api.CartHandler
	Account  *api.AccountHandler
	Checkout *api.CheckoutHandler
}

func NewHandlers(cart *api.CartHandler, account *api.AccountHandler, checkout *api.CheckoutHandler) Handlers {
	return Handlers{Cart: cart, Account: account, Checkout: checkout}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, hs Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, hs, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	slogger := logger.GetSlogLogger()
	// outermost, so panics in any later middleware are caught
	engine.Use(middleware.CustomRecovery(slogger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, slogger))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler(slogger))
}

func setupRoutes(engine *gin.Engine, hs Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		carts := apiGroup.Group("/carts")
		addRoutes(carts, []route{
			{Method: http.MethodGet, Path: "", Handler: hs.Cart.Summary},
			{Method: http.MethodGet, Path: "/items", Handler: hs.Cart.AllItems},
			{Method: http.MethodGet, Path: "/:domain", Handler: hs.Cart.Get},
			{Method: http.MethodDelete, Path: "/:domain", Handler: hs.Cart.Clear},
			{Method: http.MethodPost, Path: "/:domain/items", Handler: hs.Cart.AddItem},
			{Method: http.MethodPost, Path: "/:domain/items/:id/increase", Handler: hs.Cart.Increase},
			{Method: http.MethodPost, Path: "/:domain/items/:id/decrease", Handler: hs.Cart.Decrease},
			{Method: http.MethodDelete, Path: "/:domain/items/:id", Handler: hs.Cart.Remove},
		})

		me := apiGroup.Group("/me")
		addRoutes(me, []route{
			{Method: http.MethodGet, Path: "/addresses", Handler: hs.Account.Addresses},
			{Method: http.MethodPut, Path: "/addresses/:id/default", Handler: hs.Account.SetDefaultAddress},
			{Method: http.MethodGet, Path: "/payment-methods", Handler: hs.Account.PaymentMethods},
			{Method: http.MethodPut, Path: "/payment-methods/:id/default", Handler: hs.Account.SetDefaultPaymentMethod},
			{Method: http.MethodGet, Path: "/profile", Handler: hs.Account.Profile},
		})

		checkout := apiGroup.Group("/checkout")
		addRoutes(checkout, []route{
			{Method: http.MethodPost, Path: "/:domain", Handler: hs.Checkout.Open},
			{Method: http.MethodGet, Path: "/:domain", Handler: hs.Checkout.Get},
			{Method: http.MethodDelete, Path: "/:domain", Handler: hs.Checkout.Abandon},
			{Method: http.MethodPut, Path: "/:domain/address", Handler: hs.Checkout.SetAddress},
			{Method: http.MethodPut, Path: "/:domain/payment-method", Handler: hs.Checkout.SetPaymentMethod},
			{Method: http.MethodPost, Path: "/:domain/submit", Handler: hs.Checkout.Submit},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
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

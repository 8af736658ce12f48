package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/geprek-app/config"
	"github.com/yeremiapane/geprek-app/controllers"
	"github.com/yeremiapane/geprek-app/hub"
	"github.com/yeremiapane/geprek-app/middlewares"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
	"gorm.io/gorm"
)

// Dependencies yang dirakit di main
type Dependencies struct {
	DB          *gorm.DB
	Config      config.Config
	Redis       *redis.Client
	Hub         *hub.Hub
	Events      services.Publisher
	Storage     services.FileStorage
	Carts       services.CartStore
	RateLimiter *middlewares.RateLimiter
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if deps.Hub == nil {
		deps.Hub = hub.New()
	}
	if deps.Events == nil {
		deps.Events = services.HubPublisher{Hub: deps.Hub}
	}
	if deps.Carts == nil {
		deps.Carts = services.NewCartStore(deps.DB, deps.Redis, cfg.Redis.CartTTL)
	}
	if deps.Storage == nil {
		deps.Storage = services.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// hanya file gambar yang boleh diakses dari /uploads
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			lower := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(lower, ".jpg") &&
				!strings.HasSuffix(lower, ".jpeg") &&
				!strings.HasSuffix(lower, ".png") &&
				!strings.HasSuffix(lower, ".webp") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", cfg.Storage.UploadDir)

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.RateLimit())
	}

	// Inisialisasi service & controller
	menuSvc := services.NewMenuService(deps.DB, services.NewMenuCache(deps.Redis, cfg.Redis.MenuTTL), deps.Events)
	orderSvc := services.NewOrderService(deps.DB, deps.Events)
	recapSvc := services.NewRecapService(deps.DB, deps.Events, cfg.Location)
	authSvc := services.NewAuthService(deps.DB)

	confirm := controllers.ConfirmationSettings{
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		AutoDismiss:   cfg.ConfirmationDismiss,
	}
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc, deps.Storage)
	cartCtrl := controllers.NewCartController(controllers.NewCookieStore(cfg.Auth.SessionKey()), deps.Carts, menuSvc, orderSvc, confirm)
	orderCtrl := controllers.NewOrderController(orderSvc, confirm)
	dashboardCtrl := controllers.NewDashboardController(orderSvc, cfg.Location)
	recapCtrl := controllers.NewRecapController(recapSvc, cfg.Location)
	realtimeCtrl := controllers.NewRealtimeController(deps.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk signin/signup
	authGroup := r.Group("/auth")
	if strict, err := middlewares.NewStrictRateLimiter(cfg.Limits.Auth); err != nil {
		utils.ErrorLogger.Errorf("Invalid AUTH_RATE_LIMIT %q, strict limiter disabled: %v", cfg.Limits.Auth, err)
	} else {
		authGroup.Use(strict)
	}
	{
		authGroup.POST("/signup", authCtrl.SignUp)
		authGroup.POST("/signin", authCtrl.SignIn)
	}

	// -- CUSTOMER (Tanpa Auth) --
	r.GET("/menus", menuCtrl.GetAvailableMenus)
	r.GET("/menus/:id", menuCtrl.GetAvailableMenu)

	r.GET("/cart", cartCtrl.GetCart)
	r.POST("/cart/items", cartCtrl.AddItem)
	r.PATCH("/cart/items/:menu_item_id", cartCtrl.UpdateItem)
	r.DELETE("/cart/items/:menu_item_id", cartCtrl.RemoveItem)
	r.DELETE("/cart", cartCtrl.ClearCart)
	r.POST("/checkout", cartCtrl.Checkout)

	r.POST("/orders", orderCtrl.CreateOnlineOrder)
	r.GET("/orders/:order_id/qrcode", orderCtrl.GetOrderQRCode)

	// Dashboard realtime, token lewat query string
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), realtimeCtrl.HandleWebSocket)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", authCtrl.Profile)
	auth.POST("/signout", authCtrl.SignOut)

	admin := auth.Group("")
	admin.Use(middlewares.RequireRole(string(models.RoleAdmin)))
	{
		// MENUS
		admin.GET("/menus", menuCtrl.GetAllMenus)
		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PUT("/menus/:id", menuCtrl.UpdateMenu)
		admin.PATCH("/menus/:id/availability", menuCtrl.SetAvailability)
		admin.DELETE("/menus/:id", menuCtrl.DeleteMenu)
		admin.POST("/uploads", menuCtrl.UploadImage)

		// ORDERS
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		admin.POST("/orders", orderCtrl.CreateOfflineOrder)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		// DASHBOARD
		admin.GET("/dashboard/stats", dashboardCtrl.GetStats)
		admin.GET("/dashboard/revenue", dashboardCtrl.GetRevenueSeries)
		admin.GET("/dashboard/revenue.png", dashboardCtrl.GetRevenueChart)

		// RECAPS (admin)
		admin.POST("/recaps", recapCtrl.RequestRecap)
		admin.GET("/recaps/:id/export", middlewares.ExportLoggerMiddleware(), recapCtrl.ExportRecap)
	}

	staff := auth.Group("")
	staff.Use(middlewares.RequireRole(string(models.RoleAdmin), string(models.RoleManager)))
	{
		staff.GET("/recaps", recapCtrl.GetAllRecaps)
		staff.GET("/recaps/:id", recapCtrl.GetRecapDetail)
		staff.DELETE("/recaps/:id", recapCtrl.DeleteRecap)
	}

	manager := auth.Group("")
	manager.Use(middlewares.RequireRole(string(models.RoleManager)))
	{
		manager.POST("/recaps/:id/approve", recapCtrl.ApproveRecap)
		manager.POST("/recaps/:id/reject", recapCtrl.RejectRecap)
	}

	return r
}

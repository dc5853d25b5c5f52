package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/controllers"
	"github.com/yeremiapane/table-order-app/middlewares"
	"github.com/yeremiapane/table-order-app/services"
)

func SetupRouter(db *gorm.DB, cartStore services.CartStore, storefrontURL string) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global (50 request per detik per IP), dipasang
	// sebelum route supaya ikut terdaftar di handler chain
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Services
	sessionSvc := services.NewSessionService(db)
	cartSvc := services.NewCartService(sessionSvc, cartStore)

	// Controllers
	userCtrl := controllers.NewUserController(db)
	storeCtrl := controllers.NewStoreController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	modifierCtrl := controllers.NewModifierController(db)
	sessionCtrl := controllers.NewSessionController(sessionSvc, cartSvc, storefrontURL)
	liveCtrl := controllers.NewLiveController(sessionSvc)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	authPublic := r.Group("/")
	authPublic.Use(middlewares.NewStrictRateLimiter())
	{
		authPublic.POST("/register", userCtrl.Register)
		authPublic.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES (storefront)
	// ----------------------------------------------------------------
	public := r.Group("/public")
	{
		// Alur sesi meja via QR
		public.GET("/session/id/:id", sessionCtrl.GetSessionByQR)
		public.GET("/session/validate/:id", sessionCtrl.ValidateSession)
		public.GET("/session/cart", sessionCtrl.GetCart)
		public.POST("/session/cart", sessionCtrl.CreateCart)

		// Kanal realtime per sesi
		public.GET("/session/live", middlewares.LiveSessionMiddleware(), liveCtrl.LiveSession)

		// Katalog storefront
		public.GET("/stores", storeCtrl.GetAllStores)
		public.GET("/stores/:store_id", storeCtrl.GetStoreByID)
		public.GET("/stores/:store_id/products", productCtrl.GetProductsByStore)
		public.GET("/categories", categoryCtrl.GetAllCategories)
		public.GET("/products/:product_id", productCtrl.GetProductByID)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES (dashboard)
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.RequireRoles("admin", "staff"))

	auth.GET("/profile", userCtrl.GetProfile)

	// STORES
	auth.POST("/stores", storeCtrl.CreateStore)
	auth.PATCH("/stores/:store_id", storeCtrl.UpdateStore)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id/active", tableCtrl.SetTableActive)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// SESSIONS
	auth.PATCH("/sessions/:session_id", sessionCtrl.UpdateSession)

	// CATEGORIES
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	// PRODUCTS
	auth.POST("/products", productCtrl.CreateProduct)
	auth.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	auth.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	// MODIFIERS
	auth.POST("/modifiers", modifierCtrl.CreateModifier)
	auth.PATCH("/modifiers/:modifier_id", modifierCtrl.UpdateModifier)
	auth.DELETE("/modifiers/:modifier_id", modifierCtrl.DeleteModifier)

	return r
}

package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/tozzo28/bulking/internal/auth"
	"github.com/tozzo28/bulking/internal/availability"
	"github.com/tozzo28/bulking/internal/booking"
	"github.com/tozzo28/bulking/internal/class"
	"github.com/tozzo28/bulking/internal/config"
	"github.com/tozzo28/bulking/internal/email"
	"github.com/tozzo28/bulking/internal/ledger"
	"github.com/tozzo28/bulking/internal/schedule"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	classRepo := class.NewRepository(db)
	classService := class.NewService(classRepo)
	classHandler := class.NewHandler(classService)

	scheduleRepo := schedule.NewRepository(db)
	scheduleService := schedule.NewService(scheduleRepo, classRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	seatLedger := ledger.NewSQL(db)

	bookingRepo := booking.NewRepository(db)
	bookingService := booking.NewService(bookingRepo, scheduleService, seatLedger)
	bookingHandler := booking.NewHandler(bookingService, classService, emailService)

	seatsCache := availability.NewSeatsCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	availabilityService := availability.NewService(classRepo, seatLedger, seatsCache)
	availabilityHandler := availability.NewHandler(availabilityService)

	authMiddleware := auth.Middleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/classes", availabilityHandler.List)
		protected.GET("/classes/templates", classHandler.ListTemplates)
		protected.GET("/classes/templates/:templateID", classHandler.GetTemplate)
		protected.POST("/classes/:key/book", bookingHandler.Book)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
		protected.GET("/bookings", bookingHandler.ListMine)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/classes", classHandler.CreateTemplate)
		admin.POST("/classes/:templateID/materialize", scheduleHandler.Materialize)
		admin.GET("/occurrences", scheduleHandler.ListOccurrences)
		admin.GET("/occurrences/:key/bookings", bookingHandler.ListByOccurrence)
		admin.POST("/bookings/:bookingID/attended", bookingHandler.MarkAttended)
		admin.POST("/ledger/:key/reconcile", bookingHandler.Reconcile)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	addr := ":" + port
	return s.router.Run(addr)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

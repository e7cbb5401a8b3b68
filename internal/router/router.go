package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Alka-null/nbcc2026gamesweb/internal/config"
	"github.com/Alka-null/nbcc2026gamesweb/internal/handler"
	"github.com/Alka-null/nbcc2026gamesweb/internal/middleware"
	"github.com/Alka-null/nbcc2026gamesweb/internal/response"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Quiz      *handler.QuizHandler
	Jigsaw    *handler.JigsawHandler
	Challenge *handler.ChallengeHandler
	Feedback  *handler.FeedbackHandler
	QR        *handler.QRHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	handlers *Handlers,
	store *session.Store,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Every API caller gets a signed session cookie identifying its
	// record namespace.
	router.Use(middleware.ClientSession(cfg.SessionSecret, cfg.SessionTTL))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/code-login", authLimiter.Middleware(), handlers.Auth.CodeLogin)
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/me", handlers.Auth.Me)
	}

	// ─── 2. Quiz Group (Session Cookie) ────────────────────────────────
	quiz := router.Group("/api/v1/quiz")
	{
		quiz.POST("/login", handlers.Quiz.Login)
		quiz.GET("/state", handlers.Quiz.State)
		quiz.POST("/start", handlers.Quiz.Start)
		quiz.POST("/answer", handlers.Quiz.SubmitAnswer)
		quiz.POST("/advance", handlers.Quiz.Advance)
		quiz.POST("/reset", handlers.Quiz.Reset)
	}

	// ─── 3. Jigsaw Group ───────────────────────────────────────────────
	jigsaw := router.Group("/api/v1/jigsaw")
	{
		jigsaw.POST("/split", handlers.Jigsaw.Split)
		jigsaw.POST("/archive", handlers.Jigsaw.Archive)
	}

	// ─── 4. Misc Public Routes ─────────────────────────────────────────
	router.POST("/api/v1/feedback", handlers.Feedback.Submit)
	router.GET("/api/v1/qr", middleware.CacheControl(3600), handlers.QR.Generate)

	// ─── 5. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/session/stream", handlers.WS.SessionStream)
	}

	// ─── 6. Admin Group (Stored Admin Token) ───────────────────────────
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdminSession(store))
	{
		admin.POST("/challenges", handlers.Challenge.Start)
		admin.GET("/challenges", handlers.Challenge.List)
		admin.GET("/feedback", handlers.Feedback.List)
		admin.GET("/feedback/export/csv", handlers.Feedback.ExportCSV)
		admin.GET("/feedback/export/doc", handlers.Feedback.ExportDoc)
		admin.POST("/jigsaw/forward", handlers.Jigsaw.Forward)
	}

	return router
}

package router

import (
	"net/http"
	"time"

	"github.com/lewis-Dimun/green-fashion-score/internal/config"
	"github.com/lewis-Dimun/green-fashion-score/internal/handlers"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

// Setup wires repositories, the scoring engine and all routes into a gin
// engine ready to serve.
func Setup(log *zap.Logger, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("gfs_session", store))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.Conf.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Repositories and the scoring engine
	users := repository.NewUserRepo(db)
	pillars := repository.NewPillarRepo(db)
	questions := repository.NewQuestionRepo(db)
	options := repository.NewOptionRepo(db)
	responses := repository.NewResponseRepo(db)
	results := repository.NewResultRepo(db)
	fashion := repository.NewFashionRepo(db)
	engine := scoring.NewEngine(repository.NewScoringStore(pillars, responses, results), log)

	router.Use(UserLoader(users))

	// Handlers
	authHandler := handlers.NewAuthHandler(log, users)
	surveyHandler := handlers.NewSurveyHandler(log, pillars, options, responses, engine)
	resultsHandler := handlers.NewResultsHandler(log, engine, results)
	pillarsHandler := handlers.NewPillarsHandler(log, pillars)
	questionsHandler := handlers.NewQuestionsHandler(log, questions)
	optionsHandler := handlers.NewOptionsHandler(log, options)
	fashionHandler := handlers.NewFashionHandler(log, fashion)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	router.POST("/register", limiter, authHandler.Register)
	router.POST("/login", limiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	api := router.Group("/api")
	api.Use(AuthRequired())
	{
		api.GET("/survey", surveyHandler.GetSurvey)
		api.POST("/survey", surveyHandler.SubmitSurvey)

		api.GET("/results/me", resultsHandler.Me)
		api.GET("/results/me/chart", resultsHandler.Chart)

		api.GET("/fashion-scores", fashionHandler.List)
		api.POST("/fashion-scores", fashionHandler.Create)

		admin := api.Group("/")
		admin.Use(AdminRequired())
		{
			admin.GET("/results", resultsHandler.List)
			admin.GET("/results/:id", resultsHandler.Get)

			admin.GET("/pillars", pillarsHandler.List)
			admin.POST("/pillars", pillarsHandler.Create)
			admin.GET("/pillars/:id", pillarsHandler.Get)
			admin.PUT("/pillars/:id", pillarsHandler.Update)
			admin.DELETE("/pillars/:id", pillarsHandler.Delete)

			admin.GET("/questions", questionsHandler.List)
			admin.POST("/questions", questionsHandler.Create)
			admin.GET("/questions/:id", questionsHandler.Get)
			admin.PUT("/questions/:id", questionsHandler.Update)
			admin.DELETE("/questions/:id", questionsHandler.Delete)

			admin.GET("/options", optionsHandler.List)
			admin.POST("/options", optionsHandler.Create)
			admin.GET("/options/:id", optionsHandler.Get)
			admin.PUT("/options/:id", optionsHandler.Update)
			admin.DELETE("/options/:id", optionsHandler.Delete)
		}
	}

	return router
}

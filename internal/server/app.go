package server

import (
	"sync"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"

	"github.com/JonWatkins/guess-the-number/internal/game"
)

// App holds the server state: configuration, live sessions, and the
// per-client rate limiters.
type App struct {
	Config       Config
	Secrets      game.SecretSource
	GameSessions map[string]*GameSession
	SessionMutex sync.RWMutex
	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
	StartTime    time.Time
}

// NewApp creates an App with the given configuration and secret source.
func NewApp(cfg Config, secrets game.SecretSource) *App {
	if secrets == nil {
		secrets = game.CryptoSource
	}
	if !dirExists(cfg.SessionDir) {
		logInfo("Session directory %s not found, it will be created on first save", cfg.SessionDir)
	}
	return &App{
		Config:       cfg,
		Secrets:      secrets,
		GameSessions: make(map[string]*GameSession),
		LimiterMap:   make(map[string]*rate.Limiter),
		StartTime:    time.Now(),
	}
}

// Router builds the gin engine with middleware and routes.
func (app *App) Router() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	router.Use(requestIDMiddleware())
	router.Use(noStoreMiddleware())

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET(RouteHome, app.homeHandler)
	router.POST(RouteNewGame, app.rateLimitMiddleware(), app.newGameHandler)
	router.POST(RouteGuess, app.rateLimitMiddleware(), app.guessHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

// noStoreMiddleware disables caching on every response. Game state must
// never be served stale.
func noStoreMiddleware() gin.HandlerFunc {
	return cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})
}

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JonWatkins/guess-the-number/internal/game"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || !isValidSessionID(sessionID) {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.Config.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.Config.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// getGameState retrieves the GameSession for a session, falling back to
// disk before starting a fresh game.
func (app *App) getGameState(sessionID string) *GameSession {
	app.SessionMutex.RLock()
	session, exists := app.GameSessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		app.SessionMutex.Lock()
		session.LastAccessTime = time.Now()
		app.SessionMutex.Unlock()
		return session
	}

	if loaded, err := app.loadGameSessionFromFile(sessionID); err == nil {
		logInfo("Restored session from file: %s", sessionID)
		app.SessionMutex.Lock()
		app.GameSessions[sessionID] = loaded
		app.SessionMutex.Unlock()
		return loaded
	}

	logInfo("Creating new game for session: %s", sessionID)
	return app.createNewGame(sessionID)
}

// createNewGame draws a fresh secret for a session and stores it.
func (app *App) createNewGame(sessionID string) *GameSession {
	session := &GameSession{
		Secret:         app.Secrets(game.MinSecret, game.MaxSecret),
		GuessCount:     0,
		Won:            false,
		History:        []GuessRecord{},
		LastAccessTime: time.Now(),
	}
	app.SessionMutex.Lock()
	app.GameSessions[sessionID] = session
	app.SessionMutex.Unlock()
	logInfo("New game created for session %s", sessionID)
	return session
}

// saveGameState updates the in-memory game state and persists it to disk.
func (app *App) saveGameState(sessionID string, session *GameSession) {
	app.SessionMutex.Lock()
	app.GameSessions[sessionID] = session
	session.LastAccessTime = time.Now()
	app.SessionMutex.Unlock()

	if err := app.saveGameSessionToFile(sessionID, session); err != nil {
		logWarn("Failed to persist session %s: %v", sessionID, err)
	}
}

// StartSessionCleanup runs a background scheduler that expires idle
// sessions from memory and disk. It stops when done is closed.
func (app *App) StartSessionCleanup(done <-chan struct{}) {
	interval := app.Config.SessionTimeout / 2
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				removed := app.cleanupExpiredSessions(time.Now())
				if removed > 0 {
					logInfo("Session cleanup removed %d idle sessions", removed)
				}
				if err := app.cleanupOldSessionFiles(app.Config.SessionTimeout); err != nil {
					logWarn("Session file cleanup failed: %v", err)
				}
			}
		}
	}()
}

// cleanupExpiredSessions drops sessions idle past the timeout and returns
// how many were removed.
func (app *App) cleanupExpiredSessions(now time.Time) int {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	expired := lo.PickBy(app.GameSessions, func(_ string, s *GameSession) bool {
		return s.LastAccessTime.IsZero() || now.Sub(s.LastAccessTime) > app.Config.SessionTimeout
	})
	for sessionID := range expired {
		delete(app.GameSessions, sessionID)
	}
	return len(expired)
}

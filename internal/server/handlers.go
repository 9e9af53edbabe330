package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JonWatkins/guess-the-number/internal/game"
)

// homeHandler returns a summary of the current session's game.
func (app *App) homeHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	session := app.getGameState(sessionID)

	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"message":    game.MsgWelcome,
		"min":        game.MinSecret,
		"max":        game.MaxSecret,
		"guessCount": session.GuessCount,
		"won":        session.Won,
	})
}

// newGameHandler starts a new game session, optionally rotating the session ID.
func (app *App) newGameHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	logInfo("Creating new game for session: %s", sessionID)

	app.SessionMutex.Lock()
	delete(app.GameSessions, sessionID)
	app.SessionMutex.Unlock()

	if c.Query("reset") == "1" {
		secure := app.Config.IsProduction
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)

		newSessionID := uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, newSessionID, int(app.Config.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session ID: %s", newSessionID)
		sessionID = newSessionID
	}

	app.createNewGame(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": game.MsgWelcome,
		"min":     game.MinSecret,
		"max":     game.MaxSecret,
	})
}

// guessHandler processes one guess for the current session. Parse failures
// do not touch the session's guess count.
func (app *App) guessHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	session := app.getGameState(sessionID)

	if session.Won {
		logWarn("Session %s attempted guess on completed game", sessionID)
		c.JSON(http.StatusConflict, gin.H{"error": ErrorGameOver})
		return
	}

	raw := c.PostForm("guess")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorMissingGuess})
		return
	}

	guess, err := game.ParseGuess(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": game.MsgParseFailure})
		return
	}

	session.GuessCount++
	outcome := game.Compare(guess, session.Secret)
	session.History = append(session.History, GuessRecord{Guess: guess, Outcome: outcome})
	logInfo("Session %s guessed %d: %s (guess %d)", sessionID, guess, outcome, session.GuessCount)

	payload := gin.H{
		"guess":      guess,
		"outcome":    outcome,
		"guessCount": session.GuessCount,
		"won":        false,
	}
	if outcome == game.OutcomeCorrect {
		session.Won = true
		payload["won"] = true
		payload["secret"] = session.Secret
		payload["message"] = fmt.Sprintf(game.MsgWinFormat, session.GuessCount)
		logInfo("Session %s won in %d guesses", sessionID, session.GuessCount)
	}
	app.saveGameState(sessionID, session)

	c.JSON(http.StatusOK, payload)
}

// gameStateHandler returns the full guess history for the session.
func (app *App) gameStateHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	session := app.getGameState(sessionID)

	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	payload := gin.H{
		"guessCount": session.GuessCount,
		"won":        session.Won,
		"history":    session.History,
	}
	if session.Won {
		payload["secret"] = session.Secret
	}
	c.JSON(http.StatusOK, payload)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.SessionMutex.RLock()
	sessions := lo.Values(app.GameSessions)
	app.SessionMutex.RUnlock()

	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.Config.IsProduction],
		"active_sessions": len(sessions),
		"games_won": lo.CountBy(sessions, func(s *GameSession) bool {
			return s.Won
		}),
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

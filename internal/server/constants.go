package server

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome      = "/"
	RouteNewGame   = "/new-game"
	RouteGuess     = "/guess"
	RouteGameState = "/game-state"
	RouteHealthz   = "/healthz"
)

// Error message constants
const (
	ErrorGameOver     = "game is over, start a new game"
	ErrorMissingGuess = "missing guess"
)

// Context key constants
type contextKey string

const (
	requestIDKey contextKey = "request_id"
)

package server

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// errInvalidSessionID rejects session IDs that are not UUIDs before they
// reach the filesystem.
var errInvalidSessionID = errors.New("invalid session id")

// isValidSessionID reports whether the ID is a well-formed UUID.
func isValidSessionID(sessionID string) bool {
	if len(sessionID) != 36 {
		return false
	}
	_, err := uuid.Parse(sessionID)
	return err == nil
}

// secureSessionPath returns the session file path for a validated ID.
// Anything that is not a UUID is refused, which also blocks traversal.
func (app *App) secureSessionPath(sessionID string) (string, error) {
	if !isValidSessionID(sessionID) {
		return "", errInvalidSessionID
	}
	return filepath.Join(app.Config.SessionDir, sessionID+".json"), nil
}

// saveGameSessionToFile persists a game session to disk.
func (app *App) saveGameSessionToFile(sessionID string, session *GameSession) error {
	sessionFile, err := app.secureSessionPath(sessionID)
	if err != nil {
		logWarn("Skipping save for invalid session ID: %s", sessionID)
		return err
	}

	if err := os.MkdirAll(app.Config.SessionDir, 0755); err != nil {
		logWarn("Failed to create sessions directory: %v", err)
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		logWarn("Failed to marshal game state for session %s: %v", sessionID, err)
		return err
	}

	if err := os.WriteFile(sessionFile, data, 0600); err != nil {
		logWarn("Failed to write session file %s: %v", sessionFile, err)
		return err
	}
	return nil
}

// loadGameSessionFromFile loads a game session from disk. Stale or corrupt
// files are removed and treated as missing.
func (app *App) loadGameSessionFromFile(sessionID string) (*GameSession, error) {
	sessionFile, err := app.secureSessionPath(sessionID)
	if err != nil {
		return nil, os.ErrNotExist
	}

	info, err := os.Stat(sessionFile)
	if err != nil {
		return nil, err
	}

	fileAge := time.Since(info.ModTime())
	if fileAge > app.Config.SessionTimeout {
		logInfo("Session file is too old (%v, max: %v), removing: %s", fileAge, app.Config.SessionTimeout, sessionFile)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(sessionFile)
	if err != nil {
		logWarn("Failed to read session file %s: %v", sessionFile, err)
		return nil, err
	}

	var session GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		logWarn("Failed to unmarshal session file %s (corrupted), removing: %v", sessionFile, err)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	if session.Secret == 0 {
		logWarn("Session file %s has invalid structure, removing", sessionFile)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	session.LastAccessTime = time.Now()
	return &session, nil
}

// cleanupOldSessionFiles removes session files older than maxAge.
func (app *App) cleanupOldSessionFiles(maxAge time.Duration) error {
	entries, err := os.ReadDir(app.Config.SessionDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	removedCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logWarn("Failed to get info for session file %s: %v", entry.Name(), err)
			continue
		}
		if info.ModTime().Before(cutoff) {
			sessionFile := filepath.Join(app.Config.SessionDir, entry.Name())
			if err := os.Remove(sessionFile); err != nil {
				logWarn("Failed to remove old session file %s: %v", sessionFile, err)
			} else {
				removedCount++
			}
		}
	}
	if removedCount > 0 {
		logInfo("Session file cleanup removed %d files", removedCount)
	}
	return nil
}

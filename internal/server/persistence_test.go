package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JonWatkins/guess-the-number/internal/game"
)

// TestIsValidSessionID checks session ID validation
func TestIsValidSessionID(t *testing.T) {
	valid := uuid.NewString()
	if !isValidSessionID(valid) {
		t.Errorf("isValidSessionID(%q) = false, want true", valid)
	}
	for _, bad := range []string{
		"", "short",
		"../../etc/passwd",
		"zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz",
		"12345678-1234-1234-1234-12345678901G",
	} {
		if isValidSessionID(bad) {
			t.Errorf("isValidSessionID(%q) = true, want false", bad)
		}
	}
}

// TestIsValidSessionID_Uppercase checks uppercase UUIDs are accepted
func TestIsValidSessionID_Uppercase(t *testing.T) {
	valid := "12345678-1234-5678-9ABC-123456789DEF"
	if !isValidSessionID(valid) {
		t.Errorf("isValidSessionID(%q) = false, want true", valid)
	}
}

// TestSecureSessionPath_Traversal checks path traversal is refused
func TestSecureSessionPath_Traversal(t *testing.T) {
	app := newTestApp(t, 42)
	ids := []string{
		"../../etc/passwd",
		"..\\..\\windows\\system32",
		"short",
		"",
	}
	for _, id := range ids {
		if _, err := app.secureSessionPath(id); err == nil {
			t.Errorf("secureSessionPath(%q) should fail for traversal/invalid", id)
		}
	}
}

// TestSessionFileRoundtrip checks session file save/load roundtrip
func TestSessionFileRoundtrip(t *testing.T) {
	app := newTestApp(t, 42)
	sessionID := uuid.NewString()
	session := &GameSession{
		Secret:     68,
		GuessCount: 3,
		History: []GuessRecord{
			{Guess: 50, Outcome: game.OutcomeTooSmall},
			{Guess: 75, Outcome: game.OutcomeTooBig},
			{Guess: 62, Outcome: game.OutcomeTooSmall},
		},
		LastAccessTime: time.Now(),
	}

	if err := app.saveGameSessionToFile(sessionID, session); err != nil {
		t.Fatalf("saveGameSessionToFile failed: %v", err)
	}
	loaded, err := app.loadGameSessionFromFile(sessionID)
	if err != nil {
		t.Fatalf("loadGameSessionFromFile failed: %v", err)
	}
	if loaded.Secret != session.Secret {
		t.Errorf("loaded.Secret = %d, want %d", loaded.Secret, session.Secret)
	}
	if loaded.GuessCount != session.GuessCount {
		t.Errorf("loaded.GuessCount = %d, want %d", loaded.GuessCount, session.GuessCount)
	}
	if len(loaded.History) != len(session.History) {
		t.Errorf("loaded history length = %d, want %d", len(loaded.History), len(session.History))
	}
}

// TestSaveGameSessionToFile_InvalidID checks invalid IDs are not written
func TestSaveGameSessionToFile_InvalidID(t *testing.T) {
	app := newTestApp(t, 42)
	if err := app.saveGameSessionToFile("../../escape", &GameSession{Secret: 5}); err == nil {
		t.Error("saveGameSessionToFile should refuse invalid session IDs")
	}
}

// TestLoadGameSessionFromFile_Corrupt checks corrupt files are removed
func TestLoadGameSessionFromFile_Corrupt(t *testing.T) {
	app := newTestApp(t, 42)
	sessionID := uuid.NewString()
	sessionFile := filepath.Join(app.Config.SessionDir, sessionID+".json")
	if err := os.MkdirAll(app.Config.SessionDir, 0755); err != nil {
		t.Fatalf("Failed to create session dir: %v", err)
	}
	if err := os.WriteFile(sessionFile, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, err := app.loadGameSessionFromFile(sessionID); err == nil {
		t.Error("loadGameSessionFromFile should fail for corrupt file")
	}
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Error("Corrupt session file was not removed")
	}
}

// TestLoadGameSessionFromFile_Stale checks stale files are expired
func TestLoadGameSessionFromFile_Stale(t *testing.T) {
	app := newTestApp(t, 42)
	sessionID := uuid.NewString()
	if err := app.saveGameSessionToFile(sessionID, &GameSession{Secret: 42}); err != nil {
		t.Fatalf("saveGameSessionToFile failed: %v", err)
	}

	sessionFile := filepath.Join(app.Config.SessionDir, sessionID+".json")
	old := time.Now().Add(-(app.Config.SessionTimeout + time.Hour))
	if err := os.Chtimes(sessionFile, old, old); err != nil {
		t.Fatalf("Failed to age session file: %v", err)
	}

	if _, err := app.loadGameSessionFromFile(sessionID); err == nil {
		t.Error("loadGameSessionFromFile should fail for stale file")
	}
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Error("Stale session file was not removed")
	}
}

// TestCleanupOldSessionFiles checks expired files are swept
func TestCleanupOldSessionFiles(t *testing.T) {
	app := newTestApp(t, 42)
	freshID := uuid.NewString()
	oldID := uuid.NewString()
	for _, id := range []string{freshID, oldID} {
		if err := app.saveGameSessionToFile(id, &GameSession{Secret: 42}); err != nil {
			t.Fatalf("saveGameSessionToFile failed: %v", err)
		}
	}

	oldFile := filepath.Join(app.Config.SessionDir, oldID+".json")
	old := time.Now().Add(-(app.Config.SessionTimeout + time.Hour))
	if err := os.Chtimes(oldFile, old, old); err != nil {
		t.Fatalf("Failed to age session file: %v", err)
	}

	if err := app.cleanupOldSessionFiles(app.Config.SessionTimeout); err != nil {
		t.Fatalf("cleanupOldSessionFiles failed: %v", err)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("Old session file was not removed")
	}
	freshFile := filepath.Join(app.Config.SessionDir, freshID+".json")
	if _, err := os.Stat(freshFile); err != nil {
		t.Errorf("Fresh session file should survive cleanup: %v", err)
	}
}

// TestCleanupOldSessionFiles_MissingDir checks a missing directory is not an error
func TestCleanupOldSessionFiles_MissingDir(t *testing.T) {
	app := newTestApp(t, 42)
	app.Config.SessionDir = filepath.Join(app.Config.SessionDir, "does-not-exist")
	if err := app.cleanupOldSessionFiles(time.Hour); err != nil {
		t.Errorf("cleanupOldSessionFiles on missing dir = %v, want nil", err)
	}
}

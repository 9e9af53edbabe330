package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonWatkins/guess-the-number/internal/game"
)

// main starts one terminal game session immediately: no flags, no
// subcommands. Exit status is 0 on a win and 1 when the input stream
// closes before a correct guess or the output stream fails.
func main() {
	_ = godotenv.Load()

	loop := game.NewLoop(game.CryptoSource, os.Stdin, os.Stdout)
	if _, err := loop.Run(); err != nil {
		if errors.Is(err, game.ErrInputClosed) {
			logWarn("Input closed before the secret was guessed")
			os.Exit(1)
		}
		logFatal("Game aborted: %v", err)
	}
}

// logWarn logs a warning-level message.
func logWarn(format string, v ...any) {
	log.Printf("[WARN] "+format, v...)
}

// logFatal logs a fatal error and exits.
func logFatal(format string, v ...any) {
	log.Fatalf("[FATAL] "+format, v...)
}

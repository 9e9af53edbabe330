package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
)

// Message constants
const (
	MsgWelcome      = "Guess the number"
	MsgPrompt       = "Please input your guess:"
	MsgTooSmall     = "Too small"
	MsgTooBig       = "Too big"
	MsgParseFailure = "Please type a number!"
	MsgWinFormat    = "You win, in %d guesses!"
)

// ErrInputClosed is returned by Run when the input stream ends before a
// correct guess. Callers decide the exit status; the CLI exits 1.
var ErrInputClosed = errors.New("input closed before a correct guess")

// Loop runs one game session: it owns the secret, the guess count, and the
// input/output streams for the session's lifetime.
type Loop struct {
	secret  int
	guesses int
	in      *bufio.Reader
	out     io.Writer
}

// NewLoop draws a secret from src and prepares a session over in/out.
func NewLoop(src SecretSource, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		secret: src(MinSecret, MaxSecret),
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Secret returns the session's secret. It never changes once drawn.
func (l *Loop) Secret() int {
	return l.secret
}

// Guesses returns how many syntactically valid guesses were submitted.
func (l *Loop) Guesses() int {
	return l.guesses
}

// Run plays the session to completion and returns the final guess count.
// Parse failures print MsgParseFailure and re-prompt without counting.
// End of input returns ErrInputClosed; a write failure on the output
// stream is unrecoverable and returns the underlying error.
func (l *Loop) Run() (int, error) {
	if err := l.writeLine(MsgWelcome); err != nil {
		return l.guesses, err
	}

	for {
		if err := l.writeLine(MsgPrompt); err != nil {
			return l.guesses, err
		}

		line, err := l.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return l.guesses, ErrInputClosed
			}
			return l.guesses, err
		}

		guess, perr := ParseGuess(line)
		if perr != nil {
			if werr := l.writeLine(MsgParseFailure); werr != nil {
				return l.guesses, werr
			}
			continue
		}

		l.guesses++
		switch Compare(guess, l.secret) {
		case OutcomeTooSmall:
			if werr := l.writeLine(MsgTooSmall); werr != nil {
				return l.guesses, werr
			}
		case OutcomeTooBig:
			if werr := l.writeLine(MsgTooBig); werr != nil {
				return l.guesses, werr
			}
		case OutcomeCorrect:
			if werr := l.writeLine(fmt.Sprintf(MsgWinFormat, l.guesses)); werr != nil {
				return l.guesses, werr
			}
			return l.guesses, nil
		}
	}
}

func (l *Loop) writeLine(s string) error {
	_, err := fmt.Fprintln(l.out, s)
	return err
}

// logWarn logs a warning-level message.
func logWarn(format string, v ...any) {
	log.Printf("[WARN] "+format, v...)
}

// Package terminal implements the line-oriented console the game is played on.
//
// Console reads player input line by line and writes prompts and messages
// to an output stream. It satisfies game.UI.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/robalobadob/codebreak/internal/game"
)

// clearSeq clears the screen and homes the cursor (ANSI).
const clearSeq = "\x1b[2J\x1b[H"

var _ game.UI = (*Console)(nil)

// maxLineLen caps how much of one input line is kept. The rest of an
// over-long line is discarded so it still reads as a single (invalid) entry.
const maxLineLen = 4 << 10

// inputLine is one line read from the input, or the error that ended it.
type inputLine struct {
	text string
	err  error
}

// Console is a prompt/response terminal over an input and output stream.
type Console struct {
	lines      chan inputLine
	out        io.Writer
	clear      bool
	maxPlayers int
}

// New returns a console. clearScreen enables ANSI screen clearing;
// maxPlayers bounds the player-count prompt.
//
// Input is read by a background goroutine so that a pending read can be
// abandoned when its context is cancelled. The goroutine exits once in
// reports an error or EOF.
func New(in io.Reader, out io.Writer, clearScreen bool, maxPlayers int) *Console {
	c := &Console{lines: make(chan inputLine), out: out, clear: clearScreen, maxPlayers: maxPlayers}
	go c.scan(bufio.NewReader(in))
	return c
}

// scan feeds input lines to readLine until the reader fails.
func (c *Console) scan(r *bufio.Reader) {
	defer close(c.lines)
	for {
		text, err := readCapped(r)
		if err != nil {
			c.lines <- inputLine{err: err}
			return
		}
		c.lines <- inputLine{text: text}
	}
}

// readCapped reads through the next newline, keeping at most maxLineLen
// bytes. A final line without a newline is returned before io.EOF.
func readCapped(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, err := r.ReadSlice('\n')
		if room := maxLineLen - len(buf); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			buf = append(buf, chunk...)
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && len(buf) > 0:
			return string(buf), nil
		}
		return string(buf), err
	}
}

// Stdio returns a console on stdin/stdout. The screen is only cleared when
// stdout is a terminal and noClear is false.
func Stdio(noClear bool, maxPlayers int) *Console {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return New(os.Stdin, os.Stdout, tty && !noClear, maxPlayers)
}

// readLine prints prompt and returns the next trimmed input line.
// io.EOF is returned once input is exhausted; ctx.Err() if ctx is done
// first. A line that arrives after cancellation is kept for the next read.
func (c *Console) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// ReadGuess prompts the named player for a guess.
func (c *Console) ReadGuess(ctx context.Context, player string) (string, error) {
	return c.readLine(ctx, player+", enter your 4-digit guess: ")
}

// Display prints msg on its own line.
func (c *Console) Display(msg string) { fmt.Fprintln(c.out, msg) }

// Pause sleeps for d, returning early if ctx is cancelled.
func (c *Console) Pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Clear wipes the screen when clearing is enabled.
func (c *Console) Clear() {
	if c.clear {
		fmt.Fprint(c.out, clearSeq)
	}
}

// ReadPlayerNames asks for a player count and then one non-empty name per player.
func (c *Console) ReadPlayerNames(ctx context.Context) ([]string, error) {
	n, err := c.ReadChoice(ctx, fmt.Sprintf("Enter the number of players (2 to %d): ", c.maxPlayers), 2, c.maxPlayers)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, n)
	for len(names) < n {
		name, err := c.readLine(ctx, fmt.Sprintf("Enter name for Player %d: ", len(names)+1))
		if err != nil {
			return nil, err
		}
		if name == "" {
			c.Display("Name must not be empty.")
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// ChooseStart lists the players and returns the index of the one who goes
// first, or -1 when a random turn order was requested.
func (c *Console) ChooseStart(ctx context.Context, names []string) (int, error) {
	c.Display("\n--- Select Starting Player ---")
	for i, n := range names {
		c.Display(fmt.Sprintf("  [%d] %s", i+1, n))
	}
	c.Display("  [0] Random turn order")
	choice, err := c.ReadChoice(ctx, "Enter selection: ", 0, len(names))
	if err != nil {
		return 0, err
	}
	return choice - 1, nil
}

// ReadChoice reads an integer in [lo, hi], re-prompting until one is given.
func (c *Console) ReadChoice(ctx context.Context, prompt string, lo, hi int) (int, error) {
	for {
		line, err := c.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		if v, err := strconv.Atoi(line); err == nil && v >= lo && v <= hi {
			return v, nil
		}
		c.Display(fmt.Sprintf("Please enter a number between %d and %d.", lo, hi))
	}
}

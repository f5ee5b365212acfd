// Package repl implements the line-oriented text interface for playing a
// game: coordinate moves, board display, saved games and perft.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/perft"
	"github.com/hailam/chessrules/internal/storage"
)

const maxPerftDepth = 6

// REPL reads commands from in and writes responses to out.
type REPL struct {
	session *game.Session
	store   *storage.Storage
	prefs   *storage.UserPreferences

	perftParallel bool

	in  io.Reader
	out io.Writer

	info *color.Color
	good *color.Color
	warn *color.Color
	bad  *color.Color
}

// Option configures a REPL.
type Option func(*REPL)

// WithStorage persists preferences, statistics and saved games in store.
func WithStorage(store *storage.Storage) Option {
	return func(r *REPL) { r.store = store }
}

// WithParallelPerft spreads perft root moves across goroutines.
func WithParallelPerft(enabled bool) Option {
	return func(r *REPL) { r.perftParallel = enabled }
}

// WithoutColor turns off coloured output for this REPL only.
func WithoutColor() Option {
	return (*REPL).disableColor
}

func (r *REPL) disableColor() {
	for _, c := range []*color.Color{r.info, r.good, r.warn, r.bad} {
		c.DisableColor()
	}
}

// New creates a REPL. Preferences are loaded from storage when present.
func New(in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		in:   in,
		out:  out,
		info: color.New(color.FgCyan),
		good: color.New(color.FgGreen, color.Bold),
		warn: color.New(color.FgYellow),
		bad:  color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.loadPreferences()
	if !r.prefs.Color {
		r.disableColor()
	}
	r.session = game.NewSession(
		game.WithFlipped(r.prefs.Flipped),
		game.WithHighlightLegalMoves(r.prefs.HighlightLegalMoves),
	)
	return r
}

// Session returns the game being played.
func (r *REPL) Session() *game.Session { return r.session }

func (r *REPL) loadPreferences() {
	if r.store == nil {
		r.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	r.prefs, err = r.store.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		r.prefs = storage.DefaultPreferences()
	}
}

func (r *REPL) savePreferences() {
	if r.store == nil {
		return
	}

	r.prefs.Flipped = r.session.Flipped()
	r.prefs.HighlightLegalMoves = r.session.HighlightLegalMoves()
	if err := r.store.SavePreferences(r.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// Run processes commands until quit, end of input, or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			r.handleHelp()
		case "new", "reset":
			r.session.Reset()
			r.info.Fprintln(r.out, "New game.")
		case "board", "d":
			r.render(nil)
		case "show":
			r.handleShow(args)
		case "moves":
			r.handleMoves(args)
		case "flip":
			r.session.Flip()
			r.savePreferences()
			r.render(nil)
		case "highlight":
			r.handleHighlight(args)
		case "color", "colour":
			r.handleColor(args)
		case "history":
			r.handleHistory()
		case "taken":
			r.handleTaken()
		case "status":
			r.printStatus()
		case "position":
			r.handlePosition(args)
		case "save":
			r.handleSave(args)
		case "load":
			r.handleLoad(args)
		case "list":
			r.handleList()
		case "delete":
			r.handleDelete(args)
		case "stats":
			r.handleStats()
		case "perft":
			r.handlePerft(ctx, args)
		case "quit", "exit":
			return nil
		default:
			r.handleMove(cmd)
		}
	}

	return scanner.Err()
}

func (r *REPL) handleHelp() {
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  e2e4                play a move (king onto rook castles)")
	fmt.Fprintln(r.out, "  board | d           show the board")
	fmt.Fprintln(r.out, "  show <sq>           show the board with the moves of <sq> marked")
	fmt.Fprintln(r.out, "  moves [sq]          list legal moves")
	fmt.Fprintln(r.out, "  flip                turn the board around")
	fmt.Fprintln(r.out, "  highlight on|off    toggle legal move highlighting")
	fmt.Fprintln(r.out, "  color on|off        toggle coloured output")
	fmt.Fprintln(r.out, "  history | taken     show the move history or captured pieces")
	fmt.Fprintln(r.out, "  status              show check, mate or stalemate")
	fmt.Fprintln(r.out, "  position startpos [moves ...]")
	fmt.Fprintln(r.out, "  save|load|delete <name>, list")
	fmt.Fprintln(r.out, "  stats               show finished game statistics")
	fmt.Fprintln(r.out, "  perft <depth> [divide]")
	fmt.Fprintln(r.out, "  new | quit")
}

// handleMove plays coordinate text and reports the result.
func (r *REPL) handleMove(text string) {
	if _, err := r.session.PlayText(text); err != nil {
		switch {
		case errors.Is(err, game.ErrGameOver):
			r.warn.Fprintf(r.out, "Game is over: %s. Type 'new' to start again.\n", r.session.Outcome())
		case errors.Is(err, game.ErrLeavesInCheck):
			r.bad.Fprintln(r.out, "Illegal move - King would be in check")
		case errors.Is(err, game.ErrNotYourTurn):
			r.bad.Fprintln(r.out, "Not your turn")
		case errors.Is(err, game.ErrBlockedByOwnPiece):
			r.bad.Fprintln(r.out, "Square occupied by your piece")
		case errors.Is(err, game.ErrNoPiece):
			r.bad.Fprintln(r.out, "No piece on that square")
		case errors.Is(err, board.ErrInvalidSquare), len(text) != 4:
			r.bad.Fprintf(r.out, "Unknown command: %s (type 'help')\n", text)
		default:
			r.bad.Fprintf(r.out, "Invalid move: %s\n", text)
		}
		return
	}

	last, _ := r.session.LastMove()
	r.good.Fprintf(r.out, "%s played %s\n", last.Piece().Alliance, last)
	r.printStatus()

	if outcome := r.session.Outcome(); outcome.IsOver() {
		r.recordResult(outcome)
	}
}

// render draws the board from the session's point of view. Destinations of
// marked moves show as '*' when empty and in brackets when occupied.
func (r *REPL) render(marked []board.Move) {
	targets := make(map[board.Square]bool, len(marked))
	for _, m := range marked {
		targets[m.To()] = true
	}

	squares := r.session.Squares()
	for i, sq := range squares {
		if i%board.NumTilesPerRow == 0 {
			fmt.Fprintf(r.out, "%d ", sq.Rank())
		}

		tile := r.session.Board().TileAt(sq)
		switch {
		case targets[sq] && tile.IsOccupied():
			r.warn.Fprintf(r.out, "[%s]", tile)
		case targets[sq]:
			r.warn.Fprint(r.out, " * ")
		case tile.IsOccupied():
			fmt.Fprintf(r.out, " %s ", tile)
		default:
			fmt.Fprint(r.out, " . ")
		}

		if i%board.NumTilesPerRow == board.NumTilesPerRow-1 {
			fmt.Fprintln(r.out)
		}
	}

	fmt.Fprint(r.out, " ")
	for _, sq := range squares[:board.NumTilesPerRow] {
		fmt.Fprintf(r.out, "  %c", 'a'+sq.Column())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printStatus() {
	outcome := r.session.Outcome()
	switch outcome {
	case game.InProgress:
		r.info.Fprintf(r.out, "%s to move.\n", r.session.Board().CurrentPlayer().Alliance())
	case game.Check:
		r.warn.Fprintf(r.out, "Check! %s to move.\n", r.session.Board().CurrentPlayer().Alliance())
	default:
		r.good.Fprintf(r.out, "%s.\n", outcome)
	}
}

func (r *REPL) recordResult(outcome game.Outcome) {
	if r.store == nil {
		return
	}

	var result storage.Result
	switch outcome {
	case game.WhiteWins:
		result = storage.ResultWhiteWins
	case game.BlackWins:
		result = storage.ResultBlackWins
	default:
		result = storage.ResultStalemate
	}
	if err := r.store.RecordResult(result, len(r.session.MoveLog())); err != nil {
		log.Printf("Warning: Failed to record result: %v", err)
	}
	r.prefs.LastPlayed = time.Now()
	r.savePreferences()
}

func (r *REPL) parseSquareArg(args []string) (board.Square, bool) {
	if len(args) == 0 {
		return board.NoSquare, false
	}
	sq, err := board.ParseSquare(strings.ToLower(args[0]))
	if err != nil {
		r.bad.Fprintln(r.out, err)
		return board.NoSquare, false
	}
	return sq, true
}

func (r *REPL) handleShow(args []string) {
	sq, ok := r.parseSquareArg(args)
	if !ok {
		r.render(nil)
		return
	}
	if !r.session.HighlightLegalMoves() {
		r.warn.Fprintln(r.out, "Highlighting is off; use 'highlight on'.")
	}
	r.render(r.session.HighlightedMoves(sq))
}

func (r *REPL) handleMoves(args []string) {
	var moves []board.Move
	if sq, ok := r.parseSquareArg(args); ok {
		moves = r.session.LegalMovesFrom(sq)
	} else if len(args) == 0 {
		for _, p := range r.session.Board().CurrentPlayer().ActivePieces() {
			moves = append(moves, r.session.LegalMovesFrom(p.Square)...)
		}
	} else {
		return
	}

	if len(moves) == 0 {
		r.warn.Fprintln(r.out, "No legal moves.")
		return
	}
	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = fmt.Sprintf("%s(%s)", m.Coordinates(), m)
	}
	fmt.Fprintln(r.out, strings.Join(texts, " "))
}

func (r *REPL) handleHighlight(args []string) {
	switch {
	case len(args) == 0:
		r.session.SetHighlightLegalMoves(!r.session.HighlightLegalMoves())
	case args[0] == "on":
		r.session.SetHighlightLegalMoves(true)
	case args[0] == "off":
		r.session.SetHighlightLegalMoves(false)
	default:
		r.bad.Fprintln(r.out, "usage: highlight on|off")
		return
	}
	r.savePreferences()
	r.info.Fprintf(r.out, "Highlighting %s.\n", onOff(r.session.HighlightLegalMoves()))
}

func (r *REPL) handleColor(args []string) {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		r.bad.Fprintln(r.out, "usage: color on|off")
		return
	}

	r.prefs.Color = args[0] == "on"
	for _, c := range []*color.Color{r.info, r.good, r.warn, r.bad} {
		if r.prefs.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	r.savePreferences()
	r.info.Fprintf(r.out, "Colour %s.\n", args[0])
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (r *REPL) handleHistory() {
	rows := r.session.History()
	if len(rows) == 0 {
		r.info.Fprintln(r.out, "No moves yet.")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "%3d. %-8s %s\n", row.Number, row.White, row.Black)
	}
}

func (r *REPL) handleTaken() {
	for _, a := range []board.Alliance{board.White, board.Black} {
		pieces := r.session.TakenPieces(a)
		letters := make([]string, len(pieces))
		for i, p := range pieces {
			letters[i] = p.String()
		}
		fmt.Fprintf(r.out, "%s lost: %s\n", a, strings.Join(letters, " "))
	}
}

// handlePosition accepts "position startpos [moves ...]".
func (r *REPL) handlePosition(args []string) {
	if len(args) == 0 || args[0] != "startpos" {
		r.bad.Fprintln(r.out, "usage: position startpos [moves e2e4 ...]")
		return
	}

	var moves []string
	for i, arg := range args {
		if arg == "moves" {
			moves = args[i+1:]
			break
		}
	}

	if err := r.session.Replay(moves); err != nil {
		r.bad.Fprintf(r.out, "Invalid position: %v\n", err)
		return
	}
	r.printStatus()
}

func (r *REPL) requireStore() bool {
	if r.store == nil {
		r.bad.Fprintln(r.out, "Storage is not available.")
		return false
	}
	return true
}

func (r *REPL) handleSave(args []string) {
	if !r.requireStore() {
		return
	}
	if len(args) == 0 {
		r.bad.Fprintln(r.out, "usage: save <name>")
		return
	}
	name := strings.Join(args, " ")
	if err := r.store.SaveGame(name, r.session.Moves()); err != nil {
		r.bad.Fprintf(r.out, "Save failed: %v\n", err)
		return
	}
	r.good.Fprintf(r.out, "Saved %q (%d moves).\n", name, len(r.session.MoveLog()))
}

func (r *REPL) handleLoad(args []string) {
	if !r.requireStore() {
		return
	}
	if len(args) == 0 {
		r.bad.Fprintln(r.out, "usage: load <name>")
		return
	}
	name := strings.Join(args, " ")
	saved, err := r.store.LoadGame(name)
	if err != nil {
		r.bad.Fprintf(r.out, "Load failed: %v\n", err)
		return
	}
	if err := r.session.Replay(saved.Moves); err != nil {
		r.bad.Fprintf(r.out, "Load failed: %v\n", err)
		return
	}
	r.good.Fprintf(r.out, "Loaded %q (%d moves).\n", saved.Name, len(saved.Moves))
	r.printStatus()
}

func (r *REPL) handleList() {
	if !r.requireStore() {
		return
	}
	games, err := r.store.ListGames()
	if err != nil {
		r.bad.Fprintf(r.out, "List failed: %v\n", err)
		return
	}
	if len(games) == 0 {
		r.info.Fprintln(r.out, "No saved games.")
		return
	}
	for _, g := range games {
		fmt.Fprintf(r.out, "%-20s %3d moves  %s\n", g.Name, len(g.Moves), g.SavedAt.Format(time.DateTime))
	}
}

func (r *REPL) handleDelete(args []string) {
	if !r.requireStore() {
		return
	}
	if len(args) == 0 {
		r.bad.Fprintln(r.out, "usage: delete <name>")
		return
	}
	name := strings.Join(args, " ")
	if err := r.store.DeleteGame(name); err != nil {
		r.bad.Fprintf(r.out, "Delete failed: %v\n", err)
		return
	}
	r.good.Fprintf(r.out, "Deleted %q.\n", name)
}

func (r *REPL) handleStats() {
	if !r.requireStore() {
		return
	}
	stats, err := r.store.LoadStats()
	if err != nil {
		r.bad.Fprintf(r.out, "Stats failed: %v\n", err)
		return
	}
	p := message.NewPrinter(language.English)
	fmt.Fprintln(r.out, p.Sprintf("Games: %d  White wins: %d  Black wins: %d  Stalemates: %d",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Stalemates))
	fmt.Fprintln(r.out, p.Sprintf("Longest game: %d plies  Average: %.1f plies",
		stats.LongestGame, stats.AveragePlies()))
}

func (r *REPL) handlePerft(ctx context.Context, args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 || d > maxPerftDepth {
			r.bad.Fprintf(r.out, "usage: perft <0-%d> [divide]\n", maxPerftDepth)
			return
		}
		depth = d
	}

	b := r.session.Board()
	if len(args) > 1 && args[1] == "divide" {
		for _, split := range perft.Divide(b, depth) {
			fmt.Fprintf(r.out, "%s: %d\n", split.Move, split.Nodes)
		}
	}

	start := time.Now()
	var (
		stats perft.Stats
		err   error
	)
	if r.perftParallel {
		stats, err = perft.CountParallel(ctx, b, depth)
	} else {
		stats = perft.Count(b, depth)
	}
	elapsed := time.Since(start)
	if err != nil {
		r.bad.Fprintf(r.out, "perft stopped: %v\n", err)
		return
	}

	rate := 0
	if elapsed > 0 {
		rate = int(float64(stats.Nodes) / elapsed.Seconds())
	}
	fmt.Fprintln(r.out, message.NewPrinter(language.English).
		Sprintf("d=%d %s rate=%dn/s (%.3fs elapsed)", depth, stats, rate, elapsed.Seconds()))
}

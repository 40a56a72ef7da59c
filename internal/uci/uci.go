// Package uci implements the line-oriented UCI protocol loop that drives
// internal/search from a chess GUI: uci/isready/ucinewgame/position/go/
// stop/quit, plus a perft debugging command. Grounded on the teacher's
// internal/uci/uci.go (UciHandler struct, bufio.Scanner/Writer loop,
// handleReceivedCommand token dispatch, readSearchLimits' field-by-field go
// parameter parsing) and ucioption.go for the option-table shape, trimmed
// to the options this engine actually exposes (Hash size).
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkobel/corvid/internal/engineconfig"
	"github.com/dkobel/corvid/internal/enginelog"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/movegen"
	"github.com/dkobel/corvid/internal/perft"
	"github.com/dkobel/corvid/internal/position"
	"github.com/dkobel/corvid/internal/search"
)

var out = message.NewPrinter(language.German)

const engineName = "corvid"
const engineAuthor = "a student of FrankyGo"

// Handler owns the engine's UCI-visible state: the current position, the
// Search instance, and the I/O streams. Not safe for concurrent Command
// calls — the UCI protocol is inherently single-threaded on its own input.
type Handler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	pos    *position.Position
	search *search.Search
	log    *logging.Logger
}

// NewHandler builds a Handler reading stdin/writing stdout, with a fresh
// Search sized per engineconfig.Settings.
func NewHandler() *Handler {
	p, _ := position.FromFEN(position.StartFEN)
	return &Handler{
		InIo:   bufio.NewScanner(os.Stdin),
		OutIo:  bufio.NewWriter(os.Stdout),
		pos:    p,
		search: search.New(engineconfig.Settings.Search.TTSizeMB),
		log:    enginelog.GetLog(),
	}
}

// Loop reads commands from InIo until "quit" or EOF.
func (h *Handler) Loop() {
	for h.InIo.Scan() {
		if h.handle(h.InIo.Text()) {
			return
		}
	}
}

// Command runs a single line through the dispatcher and returns everything
// it wrote, for use by tests that don't want to plumb stdin/stdout.
func (h *Handler) Command(cmd string) string {
	tmp := h.OutIo
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.handle(cmd)
	_ = h.OutIo.Flush()
	h.OutIo = tmp
	return buf.String()
}

var whitespace = regexp.MustCompile(`\s+`)

func (h *Handler) handle(cmd string) (quit bool) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}
	h.log.Debugf("<< %s", cmd)
	tokens := whitespace.Split(cmd, -1)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		h.uciCommand()
	case "isready":
		h.send("readyok")
	case "ucinewgame":
		h.pos, _ = position.FromFEN(position.StartFEN)
		h.search.NewGame()
	case "position":
		h.positionCommand(tokens)
	case "go":
		h.goCommand(tokens)
	case "stop":
		h.search.Stop()
	case "perft":
		h.perftCommand(tokens)
	case "setoption":
		h.setOptionCommand(tokens)
	default:
		h.log.Warningf("unknown command: %s", cmd)
	}
	return false
}

func (h *Handler) uciCommand() {
	h.send(fmt.Sprintf("id name %s", engineName))
	h.send(fmt.Sprintf("id author %s", engineAuthor))
	h.send("option name Hash type spin default 64 min 1 max 4096")
	h.send("uciok")
}

func (h *Handler) setOptionCommand(tokens []string) {
	name, value := "", ""
	for i := 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "name":
			if i+1 < len(tokens) {
				name = tokens[i+1]
			}
		case "value":
			if i+1 < len(tokens) {
				value = tokens[i+1]
			}
		}
	}
	if name == "Hash" {
		if mb, err := strconv.Atoi(value); err == nil {
			engineconfig.Settings.Search.TTSizeMB = mb
			h.search = search.New(mb)
		}
	}
}

func (h *Handler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		h.log.Warningf("malformed position command: %v", tokens)
		return
	}
	i := 1
	var fen string
	switch tokens[i] {
	case "startpos":
		fen = position.StartFEN
		i++
	case "fen":
		i++
		var b strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			b.WriteString(tokens[i])
			b.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(b.String())
	default:
		h.log.Warningf("malformed position command: %v", tokens)
		return
	}

	p, err := position.FromFEN(fen)
	if err != nil {
		h.log.Warningf("invalid fen %q: %v", fen, err)
		return
	}
	h.pos = p

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			m, ok := movegen.LegalFromLAN(h.pos, tokens[i])
			if !ok {
				h.log.Warningf("illegal move in position command: %s", tokens[i])
				return
			}
			child := h.pos.MakeMove(m)
			h.pos = &child
		}
	}
}

// goCommand launches the search on a background goroutine, per spec §5 —
// StartSearch itself runs synchronously on whatever goroutine calls it, so
// the UCI loop is responsible for not blocking on it, leaving "stop" free
// to interrupt it from the next line read off stdin.
func (h *Handler) goCommand(tokens []string) {
	limits, ok := parseLimits(tokens)
	if !ok {
		h.log.Warningf("malformed go command: %v", tokens)
		return
	}

	pos := h.pos
	rootFlipped := pos.Flipped()
	go func() {
		result := h.search.StartSearch(pos, limits, func(info search.Info) {
			h.sendInfo(info, rootFlipped)
		})
		h.send(fmt.Sprintf("bestmove %s", displayMove(result.BestMove, rootFlipped)))
	}()
}

func (h *Handler) perftCommand(tokens []string) {
	depth := 4
	if len(tokens) > 1 {
		if d, err := strconv.Atoi(tokens[1]); err == nil {
			depth = d
		}
	}
	go func() {
		counters := perft.Report(h.pos, depth)
		h.send(out.Sprintf("info string perft depth %d nodes %d", depth, counters.Nodes))
	}()
}

func parseLimits(tokens []string) (search.Limits, bool) {
	var l search.Limits
	for i := 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "infinite":
			l.Infinite = true
		case "depth":
			i++
			if i >= len(tokens) {
				return l, false
			}
			d, err := strconv.Atoi(tokens[i])
			if err != nil {
				return l, false
			}
			l.Depth = d
		case "movetime":
			i++
			if i >= len(tokens) {
				return l, false
			}
			ms, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				return l, false
			}
			l.MoveTime = time.Duration(ms) * time.Millisecond
		case "wtime":
			i++
			if i >= len(tokens) {
				return l, false
			}
			ms, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				return l, false
			}
			l.WhiteTime = time.Duration(ms) * time.Millisecond
		case "btime":
			i++
			if i >= len(tokens) {
				return l, false
			}
			ms, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				return l, false
			}
			l.BlackTime = time.Duration(ms) * time.Millisecond
		case "winc":
			i++
			if i >= len(tokens) {
				return l, false
			}
			ms, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				return l, false
			}
			l.WhiteInc = time.Duration(ms) * time.Millisecond
		case "binc":
			i++
			if i >= len(tokens) {
				return l, false
			}
			ms, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				return l, false
			}
			l.BlackInc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			i++
			if i >= len(tokens) {
				return l, false
			}
			n, err := strconv.Atoi(tokens[i])
			if err != nil {
				return l, false
			}
			l.MovesToGo = n
		case "nodes", "mate", "ponder", "searchmoves":
			// accepted but not implemented; a value that follows is not
			// consumed and is ignored like any other unrecognised token
		}
	}
	return l, true
}

// displayMove converts a move from the root position's side-relative frame
// (rootFlipped) into absolute UCI coordinates.
func displayMove(m move.Move, rootFlipped bool) string {
	if rootFlipped {
		m = m.Flip()
	}
	return m.String()
}

func (h *Handler) sendInfo(info search.Info, rootFlipped bool) {
	var pvStr strings.Builder
	flipped := rootFlipped
	for i, m := range info.PV {
		if i > 0 {
			pvStr.WriteByte(' ')
		}
		pvStr.WriteString(displayMove(m, flipped))
		flipped = !flipped
	}

	scoreStr := fmt.Sprintf("cp %d", info.Score)
	if info.Mate != 0 {
		scoreStr = fmt.Sprintf("mate %d", info.Mate)
	}
	h.send(fmt.Sprintf("info depth %d score %s nodes %d time %d pv %s",
		info.Depth, scoreStr, info.Nodes, info.Time.Milliseconds(), pvStr.String()))
}

func (h *Handler) send(s string) {
	h.log.Debugf(">> %s", s)
	_, _ = h.OutIo.WriteString(s + "\n")
	_ = h.OutIo.Flush()
}

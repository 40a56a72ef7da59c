// Package search implements negamax alpha-beta with iterative deepening,
// quiescence search, a transposition table, and killer/MVV-LVA move
// ordering — deliberately without the teacher's NMP/RFP/IID/PVS/LMR
// pruning, none of which the specification's baseline search calls for.
//
// Grounded on the teacher's internal/search/search.go and alphabeta.go for
// the overall Search-controller shape (a struct owning the TT and holding
// per-search mutable state, StartSearch/StopSearch, iterative deepening
// publishing info lines) and statistics.go for the node/NPS report, but
// restructured around this engine's value-copy Position instead of
// DoMove/UndoMove, and run synchronously on the calling goroutine — per
// spec §5, scheduling a background worker and polling the I/O loop is the
// UCI collaborator's job, not the search package's.
package search

import (
	"sync/atomic"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkobel/corvid/internal/engineconfig"
	"github.com/dkobel/corvid/internal/enginelog"
	"github.com/dkobel/corvid/internal/move"
	"github.com/dkobel/corvid/internal/position"
	"github.com/dkobel/corvid/internal/tt"
)

var out = message.NewPrinter(language.German)

// Inf is the search's notion of infinity; mate scores are reported as
// Inf-ply so that closer mates always outscore farther ones.
const Inf int32 = 32000

// plyCap bounds the depth of recursion-local state (killers, move buffers)
// this Search pre-allocates. MaxPly from engineconfig is clamped to it.
const plyCap = 128

// Limits mirrors the UCI "go" command's parameters (spec §4.8 time model).
type Limits struct {
	WhiteTime, BlackTime time.Duration
	WhiteInc, BlackInc   time.Duration
	MovesToGo            int
	MoveTime             time.Duration
	Depth                int
	Infinite             bool
}

// Info is published once per completed iterative-deepening depth.
type Info struct {
	Depth int
	Score int32
	Mate  int // non-zero: mate in this many moves, sign gives the side
	Nodes uint64
	Time  time.Duration
	PV    []move.Move
}

// Result is StartSearch's return value once the search has concluded.
type Result struct {
	BestMove move.Move
	Info     Info
}

// Search owns the transposition table and per-search mutable state
// (killers, node counts, the cooperative stop deadline). Not safe for
// concurrent StartSearch calls — callers must Stop and wait before
// starting another, per spec §5's single-search-in-flight rule.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	tt *tt.Table

	UseTT      bool
	UseKillers bool
	MaxDepth   int
	MaxPly     int

	endTimeNanos int64 // atomic; see Stop/timeUp

	nodes   uint64
	killers [plyCap][2]move.Move
	moveBuf [plyCap][256]move.Move
}

// New creates a Search with a TT sized to ttSizeMB.
func New(ttSizeMB int) *Search {
	cfg := engineconfig.Settings.Search
	return &Search{
		log:        enginelog.GetLog(),
		slog:       enginelog.GetSearchLog(),
		tt:         tt.New(ttSizeMB),
		UseTT:      cfg.UseTT,
		UseKillers: cfg.UseKillers,
		MaxDepth:   cfg.MaxDepth,
		MaxPly:     cfg.MaxPly,
	}
}

// NewGame clears the transposition table, as UCI's ucinewgame requires.
func (s *Search) NewGame() {
	s.tt.Clear()
}

// StartSearch runs iterative deepening from pos under limits, calling onInfo
// after each completed depth (onInfo may be nil). It returns once a depth
// completes after the time budget expires, MaxDepth/limits.Depth is
// reached, or a forced mate is found. Intended to be invoked on a
// background goroutine by the UCI front-end; Stop is safe to call
// concurrently with a StartSearch in flight.
func (s *Search) StartSearch(pos *position.Position, limits Limits, onInfo func(Info)) Result {
	start := time.Now()
	s.nodes = 0
	for i := range s.killers {
		s.killers[i][0], s.killers[i][1] = move.None, move.None
	}

	deadline := s.computeDeadline(start, limits, pos.Flipped())
	s.setDeadline(deadline)

	maxDepth := s.MaxDepth
	if limits.Depth > 0 && limits.Depth < maxDepth {
		maxDepth = limits.Depth
	}

	var best Result
	for depth := 1; depth <= maxDepth; depth++ {
		var pv []move.Move
		value := s.search(pos, depth, 0, -Inf, Inf, &pv)

		if s.timeUp() && depth > 1 {
			break
		}
		if len(pv) == 0 {
			break
		}

		info := Info{
			Depth: depth,
			Score: value,
			Nodes: s.nodes,
			Time:  time.Since(start),
			PV:    pv,
		}
		if value >= Inf-int32(plyCap) {
			info.Mate = (int(Inf-value) + 1) / 2
		} else if value <= -Inf+int32(plyCap) {
			info.Mate = -(int(Inf+value) + 1) / 2
		}
		best = Result{BestMove: pv[0], Info: info}
		if onInfo != nil {
			onInfo(info)
		}

		if info.Mate != 0 {
			break
		}
		if s.timeUp() {
			break
		}
	}
	return best
}

// Stop requests cancellation of an in-flight search. Cooperative: observed
// the next time a node checks the clock, per spec §5.
func (s *Search) Stop() {
	s.setDeadline(time.Time{})
}

// computeDeadline applies spec §4.8's time-management formulas. weAreBlack
// tells it which of the UCI clock's two absolute-colour fields is "our"
// clock, since a side-relative Position doesn't carry that distinction
// itself.
func (s *Search) computeDeadline(now time.Time, l Limits, weAreBlack bool) time.Time {
	if l.Infinite {
		return now.Add(24 * time.Hour)
	}
	if l.MoveTime > 0 {
		return now.Add(l.MoveTime / 2)
	}
	ourClock, inc := l.WhiteTime, l.WhiteInc
	if weAreBlack {
		ourClock, inc = l.BlackTime, l.BlackInc
	}
	if ourClock == 0 {
		return now.Add(24 * time.Hour)
	}
	if l.MovesToGo > 0 {
		budget := (inc*time.Duration(l.MovesToGo-1) + ourClock) / time.Duration(l.MovesToGo)
		return now.Add(budget)
	}
	budget := (inc*39 + ourClock) / 40
	return now.Add(budget)
}

func (s *Search) setDeadline(t time.Time) {
	if t.IsZero() {
		atomic.StoreInt64(&s.endTimeNanos, 0)
		return
	}
	atomic.StoreInt64(&s.endTimeNanos, t.UnixNano())
}

// timeUp reports whether the search deadline has passed. A zero deadline
// (set by Stop) is always in the past.
func (s *Search) timeUp() bool {
	return time.Now().UnixNano() >= atomic.LoadInt64(&s.endTimeNanos)
}

// checkTime polls the clock every 2048 nodes to keep time.Now() off the hot
// path, matching the usual engine practice of sampling rather than checking
// every node.
func (s *Search) checkTime() bool {
	if s.nodes&2047 != 0 {
		return false
	}
	return s.timeUp()
}

func isThreefold(p *position.Position) bool {
	key := p.ZobristKey()
	count := 0
	for _, k := range p.History() {
		if k == key {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

func isFiftyMoves(p *position.Position) bool {
	return p.HalfmoveClock() >= 100
}

// String reports TT occupancy and node totals the way the teacher's search
// statistics report does, German thousands-grouped.
func (s *Search) String() string {
	return out.Sprintf("nodes %d, %s", s.nodes, s.tt.String())
}

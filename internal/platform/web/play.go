package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/registry"
	"github.com/vovakirdan/miniplay/internal/score"
)

const (
	writeWait     = 5 * time.Second
	intentBacklog = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// errClientGone ends a session when the client closes the socket.
var errClientGone = errors.New("web: client closed the connection")

// Intent is a client message. Action uses the names of core.Action
// ("left", "jump", "restart", ...). X and Y, when both set, are a pointer
// tap in screen cells of the session's runtime config.
type Intent struct {
	Action string `json:"action"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
}

// apply merges the intent into frame. Unknown actions, quit and back are
// ignored; it reports whether anything was applied.
func (in Intent) apply(frame *core.InputFrame) bool {
	applied := false
	switch a := core.ParseAction(in.Action); a {
	case core.ActionNone, core.ActionQuit, core.ActionBack:
	default:
		frame.Set(a)
		applied = true
	}
	if in.X != nil && in.Y != nil {
		frame.SetTap(*in.X, *in.Y)
		applied = true
	}
	return applied
}

// Frame is streamed to the client after every tick.
type Frame struct {
	Tick     uint64         `json:"tick"`
	State    core.GameState `json:"state"`
	Snapshot any            `json:"snapshot"`
	Outcome  *core.Outcome  `json:"outcome,omitempty"`
	Improved bool           `json:"improved,omitempty"`
}

// handlePlay serves GET /ws/play/{id}. An optional ?seed= fixes the RNG and
// overrides the server's configured seed.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	game, err := registry.Create(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "unknown game")
		return
	}

	cfg := s.runtime
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		cfg.Seed = seed
		fixed = true
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sessID := uuid.NewString()
	sess := &playSession{
		id:     sessID,
		game:   game,
		conn:   conn,
		book:   s.book,
		cfg:    cfg,
		fixed:  fixed,
		logger: s.logger.With("session", sessID[:8], "game", id),
	}
	sess.logger.Info("play session started", "remote", r.RemoteAddr)

	if err := sess.run(r.Context()); err != nil {
		sess.logger.Warn("play session ended", "error", err)
		return
	}
	sess.logger.Info("play session ended")
}

// playSession owns one game. Its tick loop is the only goroutine touching
// the game; the reader goroutine hands intents over a channel.
type playSession struct {
	id     string
	game   registry.Game
	conn   *websocket.Conn
	book   *score.Book
	cfg    core.RuntimeConfig
	fixed  bool // restarts replay the same seed
	logger *log.Logger
}

func (p *playSession) run(ctx context.Context) error {
	intents := make(chan Intent, intentBacklog)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.readIntents(ctx, intents)
	})
	g.Go(func() error {
		defer p.conn.Close()
		return p.loop(ctx, intents)
	})

	err := g.Wait()
	if errors.Is(err, errClientGone) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readIntents decodes client messages until the socket closes.
// Messages that are not valid intents are skipped.
func (p *playSession) readIntents(ctx context.Context, out chan<- Intent) error {
	for {
		var in Intent
		if err := p.conn.ReadJSON(&in); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				continue
			}
			return errClientGone
		}

		select {
		case out <- in:
		case <-ctx.Done():
			return nil
		}
	}
}

// loop steps the game at the configured rate and streams a frame per tick.
func (p *playSession) loop(ctx context.Context, intents <-chan Intent) error {
	p.game.Reset(p.cfg)

	ticker := time.NewTicker(p.cfg.TickDuration())
	defer ticker.Stop()

	frame := core.NewInputFrame()
	var tick uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in := <-intents:
			in.apply(&frame)

		case <-ticker.C:
			tick++
			out := Frame{Tick: tick}

			if frame.Has(core.ActionRestart) {
				if !p.fixed {
					p.cfg.Seed = time.Now().UnixNano()
				}
				p.game.Reset(p.cfg)
				out.State = p.game.State()
			} else {
				res := p.game.Step(frame)
				out.State = res.State
				if res.Outcome != nil {
					out.Outcome = res.Outcome
					out.Improved = p.record(*res.Outcome)
				}
			}
			frame.Clear()
			out.Snapshot = p.game.Observe()

			if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := p.conn.WriteJSON(out); err != nil {
				return errClientGone
			}
		}
	}
}

func (p *playSession) record(o core.Outcome) bool {
	if p.book == nil {
		return false
	}
	res, err := p.book.Record(p.game.ID(), o)
	if err != nil {
		p.logger.Warn("cannot record round", "error", err)
		return false
	}
	return res.Improved
}

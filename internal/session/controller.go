package session

import (
	"context"
	"ctchen222/Criss-Cross/internal/bot"
	"ctchen222/Criss-Cross/internal/game"
	"ctchen222/Criss-Cross/internal/validator"
	"ctchen222/Criss-Cross/pkg/proto"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const drawMessage = "GAME OVER"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidPayload = errors.New("invalid payload")
)

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")

	gamesStarted, _  = meter.Int64Counter("crisscross.games.started", metric.WithDescription("Games created by start commands"))
	movesApplied, _  = meter.Int64Counter("crisscross.moves.applied", metric.WithDescription("Accepted put commands"))
	movesRejected, _ = meter.Int64Counter("crisscross.moves.rejected", metric.WithDescription("Put commands rejected by the game"))
)

type handlerFunc func(ctx context.Context, payload json.RawMessage, cb Callback) error

// Options configures the games a controller creates.
type Options struct {
	Size     int
	Strategy game.Strategy
	// User is the profile representing the connection; an anonymous human when zero.
	User game.Profile
}

// Controller is the inbound half of a session: it turns one connection's commands
// into registry and game calls.
type Controller struct {
	conn     Connection
	out      Notifier
	registry Registry
	user     game.Profile
	size     int
	strategy game.Strategy
	handlers map[proto.Command]handlerFunc

	mu     sync.Mutex
	game   *game.Game
	player *game.Player
}

// NewController binds every command once for the given connection.
func NewController(conn Connection, out Notifier, registry Registry, opts Options) *Controller {
	if opts.Size == 0 {
		opts.Size = game.DefaultSize
	}
	if opts.Strategy == nil {
		opts.Strategy = bot.FirstAvailable
	}
	if opts.User.Kind == 0 {
		opts.User = game.NewHuman("")
	}

	c := &Controller{
		conn:     conn,
		out:      out,
		registry: registry,
		user:     opts.User,
		size:     opts.Size,
		strategy: opts.Strategy,
	}
	c.handlers = map[proto.Command]handlerFunc{
		proto.CommandStart:      c.handleStart,
		proto.CommandJoin:       c.handleJoin,
		proto.CommandPut:        c.handlePut,
		proto.CommandDisconnect: c.handleDisconnect,
	}
	return c
}

// User is the profile this connection plays with.
func (c *Controller) User() game.Profile {
	return c.user
}

// Bound returns the game and seat this connection last started or joined.
func (c *Controller) Bound() (*game.Game, *game.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game, c.player
}

func (c *Controller) bind(g *game.Game, p *game.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.game, c.player = g, p
}

// Dispatch validates a decoded client message and runs its handler.
func (c *Controller) Dispatch(ctx context.Context, msg *proto.ClientToServerMessage, cb Callback) error {
	if err := validator.GetValidator().Struct(msg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	handler, ok := c.handlers[msg.Command]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Command)
	}
	return handler(ctx, msg.Payload, cb)
}

func (c *Controller) handleStart(ctx context.Context, payload json.RawMessage, cb Callback) error {
	var cfg proto.StartPayload
	if err := decode(payload, &cfg); err != nil {
		return err
	}
	return c.Start(ctx, cfg, cb)
}

func (c *Controller) handleJoin(ctx context.Context, _ json.RawMessage, cb Callback) error {
	return c.Join(ctx, cb)
}

func (c *Controller) handlePut(ctx context.Context, payload json.RawMessage, _ Callback) error {
	var move proto.PutPayload
	if err := decode(payload, &move); err != nil {
		return err
	}
	return c.Put(ctx, move)
}

func (c *Controller) handleDisconnect(ctx context.Context, _ json.RawMessage, _ Callback) error {
	c.Disconnect(ctx)
	return nil
}

// Start creates a game, optionally seats a bot in the second seat, seats the
// caller in the remaining one and announces the new game.
func (c *Controller) Start(ctx context.Context, cfg proto.StartPayload, cb Callback) error {
	ctx, span := tracer.Start(ctx, "session.Start", trace.WithAttributes(
		attribute.String("connection.id", c.conn.ID()),
		attribute.Bool("game.bot", cfg.Bot),
	))
	defer span.End()

	g, err := game.NewGame(c.size)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create game")
		return err
	}
	span.SetAttributes(attribute.String("game.id", g.ID()))

	if cfg.Bot {
		if _, err := g.RegisterAt(game.NewBot(c.strategy), 1); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to seat bot")
			return err
		}
	}
	p, err := g.Register(c.user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to seat caller")
		return err
	}

	c.registry.Add(g)
	c.conn.Join(g.ID())
	if err := c.out.Join(); err != nil {
		slog.WarnContext(ctx, "Failed to announce new game", "game.id", g.ID(), "error", err)
		span.RecordError(err)
	}
	c.bind(g, p)
	gamesStarted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("game.bot", cfg.Bot)))

	slog.InfoContext(ctx, "Game started", "connection.id", c.conn.ID(), "game.id", g.ID(), "player.id", p.ID(), "game.bot", cfg.Bot)
	if cb != nil {
		cb(g.PlayerSnapshot(p), g.Snapshot())
	}
	return nil
}

// Join seats the caller in the earliest game with an open seat. Without one it
// does nothing at all.
func (c *Controller) Join(ctx context.Context, cb Callback) error {
	ctx, span := tracer.Start(ctx, "session.Join", trace.WithAttributes(
		attribute.String("connection.id", c.conn.ID()),
	))
	defer span.End()

	g, ok := c.registry.FindAvailable()
	if !ok {
		slog.InfoContext(ctx, "No game to join", "connection.id", c.conn.ID())
		return nil
	}
	span.SetAttributes(attribute.String("game.id", g.ID()))

	p, err := g.Register(c.user)
	if errors.Is(err, game.ErrNoOpenSeat) {
		// Another connection took the seat since the lookup.
		slog.InfoContext(ctx, "Game filled up before join", "connection.id", c.conn.ID(), "game.id", g.ID())
		return nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to seat caller")
		return err
	}

	c.conn.Join(g.ID())
	c.bind(g, p)

	slog.InfoContext(ctx, "Game joined", "connection.id", c.conn.ID(), "game.id", g.ID(), "player.id", p.ID())
	if cb != nil {
		cb(g.PlayerSnapshot(p), g.Snapshot())
	}
	return nil
}

// Put plays a move for the given seat. Unknown seats are ignored; moves the game
// rejects are reported to the caller only.
func (c *Controller) Put(ctx context.Context, move proto.PutPayload) error {
	if move.X == nil || move.Y == nil {
		return fmt.Errorf("%w: missing coordinates", ErrInvalidPayload)
	}
	x, y := *move.X, *move.Y

	ctx, span := tracer.Start(ctx, "session.Put", trace.WithAttributes(
		attribute.String("connection.id", c.conn.ID()),
		attribute.String("player.id", move.PlayerID),
		attribute.Int("move.row", x),
		attribute.Int("move.col", y),
	))
	defer span.End()

	g, ok := c.registry.FindByPlayer(move.PlayerID)
	if !ok {
		slog.DebugContext(ctx, "Put for unknown player dropped", "player.id", move.PlayerID)
		return nil
	}
	p, ok := g.Player(move.PlayerID)
	if !ok {
		slog.DebugContext(ctx, "Put for unknown seat dropped", "player.id", move.PlayerID, "game.id", g.ID())
		return nil
	}
	span.SetAttributes(attribute.String("game.id", g.ID()))

	snapshot, err := g.Move(x, y, p)
	if errors.Is(err, game.ErrBadBotMove) {
		// The caller's move stands; only the bot's answer was dropped.
		slog.ErrorContext(ctx, "Bot move rejected", "game.id", g.ID(), "error", err)
		span.RecordError(err)
		err = nil
	}
	if err != nil {
		slog.WarnContext(ctx, "Invalid move from player", "player.id", p.ID(), "game.id", g.ID(), "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move")
		movesRejected.Add(ctx, 1)
		if notifyErr := c.out.Error(err); notifyErr != nil {
			slog.ErrorContext(ctx, "Failed to report invalid move", "player.id", p.ID(), "error", notifyErr)
		}
		return nil
	}
	span.SetAttributes(attribute.Bool("move.valid", true))
	movesApplied.Add(ctx, 1)

	slog.DebugContext(ctx, "Move applied", "player.id", p.ID(), "game.id", g.ID(), "row", x, "col", y, "grid", "\n"+snapshot.Values.String())

	if err := c.out.Status(g.ID(), snapshot); err != nil {
		slog.ErrorContext(ctx, "Failed to send status", "game.id", g.ID(), "error", err)
		span.RecordError(err)
	}
	if snapshot.IsOver {
		text := drawMessage
		if snapshot.Winner != nil {
			text = fmt.Sprintf("Player %s wins", snapshot.Winner.Name)
		}
		slog.InfoContext(ctx, "Game over", "game.id", g.ID(), "result", text)
		if err := c.out.Message(g.ID(), text); err != nil {
			slog.ErrorContext(ctx, "Failed to send game over message", "game.id", g.ID(), "error", err)
			span.RecordError(err)
		}
	}
	return nil
}

// Disconnect only records the departure: the game is neither forfeited nor
// cleaned up.
func (c *Controller) Disconnect(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.Disconnect", trace.WithAttributes(
		attribute.String("connection.id", c.conn.ID()),
	))
	defer span.End()

	g, p := c.Bound()
	if g == nil {
		slog.InfoContext(ctx, "Player disconnected", "connection.id", c.conn.ID())
		return
	}
	slog.InfoContext(ctx, "Player disconnected", "connection.id", c.conn.ID(), "game.id", g.ID(), "player.id", p.ID())
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
	}
	if err := validator.GetValidator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return nil
}

package session_test

import (
	"context"
	"ctchen222/Criss-Cross/internal/bot"
	"ctchen222/Criss-Cross/internal/game"
	"ctchen222/Criss-Cross/internal/session"
	"ctchen222/Criss-Cross/internal/session/mocks"
	"ctchen222/Criss-Cross/pkg/proto"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	conn       *mocks.MockConnection
	out        *mocks.MockNotifier
	registry   *mocks.MockRegistry
	controller *session.Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		conn:     mocks.NewMockConnection(ctrl),
		out:      mocks.NewMockNotifier(ctrl),
		registry: mocks.NewMockRegistry(ctrl),
	}
	f.conn.EXPECT().ID().Return("conn-1").AnyTimes()
	f.controller = session.NewController(f.conn, f.out, f.registry, session.Options{
		Size:     game.DefaultSize,
		Strategy: bot.FirstAvailable,
	})
	return f
}

type callbackArgs struct {
	called   int
	player   game.PlayerSnapshot
	snapshot game.Snapshot
}

func (a *callbackArgs) record(p game.PlayerSnapshot, s game.Snapshot) {
	a.called++
	a.player, a.snapshot = p, s
}

func intPtr(v int) *int { return &v }

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.NewGame(game.DefaultSize)
	require.NoError(t, err)
	return g
}

func TestController_Start(t *testing.T) {
	t.Run("creates, registers and announces a new game", func(t *testing.T) {
		f := newFixture(t)
		var added *game.Game
		gomock.InOrder(
			f.registry.EXPECT().Add(gomock.Any()).Do(func(g *game.Game) { added = g }),
			f.conn.EXPECT().Join(gomock.Any()).Do(func(room string) {
				require.NotNil(t, added)
				assert.Equal(t, added.ID(), room)
			}),
			f.out.EXPECT().Join().Return(nil),
		)
		var args callbackArgs

		require.NoError(t, f.controller.Start(context.Background(), proto.StartPayload{}, args.record))

		require.NotNil(t, added)
		first := added.Players()[0]
		assert.Equal(t, 1, args.called)
		assert.Equal(t, game.PlayerSnapshot{
			ID:   first.ID(),
			Name: f.controller.User().Name,
			Mark: game.MarkX,
		}, args.player)
		assert.Equal(t, game.Snapshot{Values: game.NewGrid(game.DefaultSize)}, args.snapshot)
		assert.True(t, added.IsPending(), "second seat stays open for a walk-up player")

		g, p := f.controller.Bound()
		assert.Same(t, added, g)
		assert.Same(t, first, p)
	})

	t.Run("seats a bot opposite the caller", func(t *testing.T) {
		f := newFixture(t)
		var added *game.Game
		f.registry.EXPECT().Add(gomock.Any()).Do(func(g *game.Game) { added = g })
		f.conn.EXPECT().Join(gomock.Any())
		f.out.EXPECT().Join().Return(nil)
		var args callbackArgs

		require.NoError(t, f.controller.Start(context.Background(), proto.StartPayload{Bot: true}, args.record))

		require.NotNil(t, added)
		players := added.Players()
		assert.False(t, added.IsPending())
		assert.False(t, added.IsBot(players[0]))
		assert.True(t, added.IsBot(players[1]))
		assert.Equal(t, 0, added.Turns(), "human moves first")
		assert.Equal(t, game.MarkX, args.player.Mark)
	})

	t.Run("callback is optional", func(t *testing.T) {
		f := newFixture(t)
		f.registry.EXPECT().Add(gomock.Any())
		f.conn.EXPECT().Join(gomock.Any())
		f.out.EXPECT().Join().Return(nil)

		assert.NoError(t, f.controller.Start(context.Background(), proto.StartPayload{}, nil))
	})
}

func TestController_Join(t *testing.T) {
	t.Run("registers the caller in the first available game", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		f.registry.EXPECT().FindAvailable().Return(g, true)
		f.conn.EXPECT().Join(g.ID())
		var args callbackArgs

		require.NoError(t, f.controller.Join(context.Background(), args.record))

		first := g.Players()[0]
		assert.True(t, g.IsRegistered(first))
		assert.Equal(t, f.controller.User().Name, g.PlayerSnapshot(first).Name)
		assert.Equal(t, 1, args.called)
		assert.Equal(t, first.ID(), args.player.ID)
		assert.Equal(t, g.Snapshot(), args.snapshot)
	})

	t.Run("takes the open seat of a started game", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		_, err := g.Register(game.NewHuman("Frodo"))
		require.NoError(t, err)
		f.registry.EXPECT().FindAvailable().Return(g, true)
		f.conn.EXPECT().Join(g.ID())
		var args callbackArgs

		require.NoError(t, f.controller.Join(context.Background(), args.record))

		assert.Equal(t, game.MarkO, args.player.Mark)
		assert.False(t, g.IsPending())
	})

	// No pending game means no reply of any kind, not even an error event.
	t.Run("does nothing when no game is pending", func(t *testing.T) {
		f := newFixture(t)
		f.registry.EXPECT().FindAvailable().Return(nil, false)
		var args callbackArgs

		require.NoError(t, f.controller.Join(context.Background(), args.record))

		assert.Zero(t, args.called)
		g, _ := f.controller.Bound()
		assert.Nil(t, g)
	})

	t.Run("does nothing when the game filled up meanwhile", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		for g.IsPending() {
			_, err := g.Register(game.NewHuman(""))
			require.NoError(t, err)
		}
		f.registry.EXPECT().FindAvailable().Return(g, true)
		var args callbackArgs

		require.NoError(t, f.controller.Join(context.Background(), args.record))

		assert.Zero(t, args.called)
	})
}

func TestController_Put(t *testing.T) {
	t.Run("puts the mark in the player's game", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		p, err := g.Register(game.NewHuman("Frodo"))
		require.NoError(t, err)
		f.registry.EXPECT().FindByPlayer(p.ID()).Return(g, true)
		f.out.EXPECT().Status(g.ID(), gomock.Any()).DoAndReturn(func(_ string, s game.Snapshot) error {
			assert.Equal(t, game.MarkX, s.Values[1][1])
			assert.False(t, s.IsOver)
			return nil
		})

		require.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: p.ID(), X: intPtr(1), Y: intPtr(1)}))

		assert.Equal(t, game.MarkX, g.Grid()[1][1])
	})

	t.Run("status includes the bot's answer", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		p, err := g.RegisterAt(game.NewHuman("Frodo"), 0)
		require.NoError(t, err)
		_, err = g.RegisterAt(game.NewBot(bot.FirstAvailable), 1)
		require.NoError(t, err)
		f.registry.EXPECT().FindByPlayer(p.ID()).Return(g, true)
		f.out.EXPECT().Status(g.ID(), gomock.Any()).DoAndReturn(func(_ string, s game.Snapshot) error {
			assert.Equal(t, game.MarkX, s.Values[1][1])
			assert.Equal(t, game.MarkO, s.Values[0][0])
			return nil
		})

		require.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: p.ID(), X: intPtr(1), Y: intPtr(1)}))
		assert.Equal(t, 2, g.Turns())
	})

	t.Run("a broken bot does not undo the caller's move", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		p, err := g.RegisterAt(game.NewHuman("Frodo"), 0)
		require.NoError(t, err)
		stubborn := game.StrategyFunc(func(game.Board, game.Mark) (int, int) { return 1, 1 })
		_, err = g.RegisterAt(game.NewBot(stubborn), 1)
		require.NoError(t, err)
		f.registry.EXPECT().FindByPlayer(p.ID()).Return(g, true)
		f.out.EXPECT().Status(g.ID(), gomock.Any()).DoAndReturn(func(_ string, s game.Snapshot) error {
			assert.Equal(t, game.MarkX, s.Values[1][1])
			return nil
		})

		require.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: p.ID(), X: intPtr(1), Y: intPtr(1)}))
		assert.Equal(t, 1, g.Turns())
	})

	t.Run("silently drops unknown players", func(t *testing.T) {
		f := newFixture(t)
		f.registry.EXPECT().FindByPlayer("ghost").Return(nil, false)

		assert.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: "ghost", X: intPtr(0), Y: intPtr(0)}))
	})

	t.Run("reports rejected moves to the caller only", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		_, err := g.Register(game.NewHuman("Frodo"))
		require.NoError(t, err)
		sam, err := g.Register(game.NewHuman("Sam"))
		require.NoError(t, err)
		f.registry.EXPECT().FindByPlayer(sam.ID()).Return(g, true)
		var reported error
		f.out.EXPECT().Error(gomock.Any()).DoAndReturn(func(err error) error {
			reported = err
			return nil
		})

		require.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: sam.ID(), X: intPtr(0), Y: intPtr(0)}))

		assert.ErrorIs(t, reported, game.ErrWrongTurn)
		assert.Equal(t, game.NewGrid(game.DefaultSize), g.Grid())
	})

	t.Run("announces the winner after the status", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		nick, err := g.Register(game.NewHuman("Nick"))
		require.NoError(t, err)
		sam, err := g.Register(game.NewHuman("Sam"))
		require.NoError(t, err)
		require.NoError(t, g.Put(0, 0, nick))
		require.NoError(t, g.Put(1, 0, sam))
		require.NoError(t, g.Put(0, 1, nick))
		require.NoError(t, g.Put(1, 1, sam))

		f.registry.EXPECT().FindByPlayer(nick.ID()).Return(g, true)
		gomock.InOrder(
			f.out.EXPECT().Status(g.ID(), gomock.Any()).DoAndReturn(func(_ string, s game.Snapshot) error {
				assert.True(t, s.IsOver)
				require.NotNil(t, s.Winner)
				assert.Equal(t, nick.ID(), s.Winner.ID)
				return nil
			}),
			f.out.EXPECT().Message(g.ID(), "Player Nick wins").Return(nil),
		)

		require.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: nick.ID(), X: intPtr(0), Y: intPtr(2)}))
	})

	t.Run("announces a draw", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		nick, err := g.Register(game.NewHuman("Nick"))
		require.NoError(t, err)
		sam, err := g.Register(game.NewHuman("Sam"))
		require.NoError(t, err)
		seats := []*game.Player{nick, sam}
		moves := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}}
		for i, m := range moves {
			require.NoError(t, g.Put(m[0], m[1], seats[i%2]))
		}

		f.registry.EXPECT().FindByPlayer(nick.ID()).Return(g, true)
		gomock.InOrder(
			f.out.EXPECT().Status(g.ID(), gomock.Any()).Return(nil),
			f.out.EXPECT().Message(g.ID(), "GAME OVER").Return(nil),
		)

		require.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: nick.ID(), X: intPtr(2), Y: intPtr(2)}))
		assert.True(t, g.IsOver())
	})

	t.Run("moves after the end are errors, not announcements", func(t *testing.T) {
		f := newFixture(t)
		g := newGame(t)
		_, err := g.RegisterAt(game.NewBot(bot.FirstAvailable), 0)
		require.NoError(t, err)
		p, err := g.RegisterAt(game.NewBot(bot.FirstAvailable), 1)
		require.NoError(t, err)
		require.True(t, g.IsOver())

		f.registry.EXPECT().FindByPlayer(p.ID()).Return(g, true)
		var reported error
		f.out.EXPECT().Error(gomock.Any()).DoAndReturn(func(err error) error {
			reported = err
			return nil
		})

		require.NoError(t, f.controller.Put(context.Background(), proto.PutPayload{PlayerID: p.ID(), X: intPtr(2), Y: intPtr(2)}))
		assert.ErrorIs(t, reported, game.ErrGameOver)
	})
}

func TestController_Disconnect(t *testing.T) {
	f := newFixture(t)
	g := newGame(t)
	f.registry.EXPECT().FindAvailable().Return(g, true)
	f.conn.EXPECT().Join(g.ID())
	require.NoError(t, f.controller.Join(context.Background(), nil))
	before := g.Summary()

	f.controller.Disconnect(context.Background())

	assert.Equal(t, before, g.Summary(), "disconnect leaves the game untouched")
}

func TestController_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("every command has a handler", func(t *testing.T) {
		f := newFixture(t)
		f.registry.EXPECT().Add(gomock.Any())
		f.conn.EXPECT().Join(gomock.Any())
		f.out.EXPECT().Join().Return(nil)
		f.registry.EXPECT().FindAvailable().Return(nil, false)
		f.registry.EXPECT().FindByPlayer("p").Return(nil, false)

		payloads := map[proto.Command]string{
			proto.CommandPut: `{"playerId":"p","x":0,"y":0}`,
		}
		for _, cmd := range proto.Commands() {
			msg := &proto.ClientToServerMessage{Command: cmd, Payload: json.RawMessage(payloads[cmd])}
			assert.NoError(t, f.controller.Dispatch(ctx, msg, nil), "command %s", cmd)
		}
	})

	t.Run("start decodes its config", func(t *testing.T) {
		f := newFixture(t)
		var added *game.Game
		f.registry.EXPECT().Add(gomock.Any()).Do(func(g *game.Game) { added = g })
		f.conn.EXPECT().Join(gomock.Any())
		f.out.EXPECT().Join().Return(nil)
		var args callbackArgs

		msg := &proto.ClientToServerMessage{Command: proto.CommandStart, Payload: json.RawMessage(`{"bot":true}`)}
		require.NoError(t, f.controller.Dispatch(ctx, msg, args.record))

		require.NotNil(t, added)
		assert.True(t, added.IsBot(added.Players()[1]))
		assert.Equal(t, 1, args.called)
	})

	t.Run("rejects unknown commands", func(t *testing.T) {
		f := newFixture(t)

		err := f.controller.Dispatch(ctx, &proto.ClientToServerMessage{Command: "forfeit"}, nil)

		assert.ErrorIs(t, err, session.ErrInvalidPayload)
	})

	t.Run("rejects malformed put payloads", func(t *testing.T) {
		f := newFixture(t)
		for _, payload := range []string{
			`{"x":0,"y":0}`,
			`{"playerId":"p","y":0}`,
			`{"playerId":"p","x":"zero","y":0}`,
			``,
		} {
			msg := &proto.ClientToServerMessage{Command: proto.CommandPut, Payload: json.RawMessage(payload)}
			assert.ErrorIs(t, f.controller.Dispatch(ctx, msg, nil), session.ErrInvalidPayload, "payload %q", payload)
		}
	})
}

package server

import (
	"ctchen222/Criss-Cross/internal/api/controller"
	"ctchen222/Criss-Cross/internal/hub"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Hub accepts upgraded websocket connections.
type Hub interface {
	Attach(conn *websocket.Conn) (*hub.Client, error)
}

type Server struct {
	hub      Hub
	games    *controller.GameController
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

// NewServer wires the routes. An empty allowedOrigins accepts websocket
// upgrades from any origin.
func NewServer(h Hub, games *controller.GameController, allowedOrigins []string) *Server {
	s := &Server{
		hub:   h,
		games: games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/ws", s.handleWebSocket)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := engine.Group("/api")
	api.GET("/games", s.games.List)
	api.GET("/games/:id", s.games.Get)
	s.engine = engine

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		// Non-browser clients send no Origin.
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// handleWebSocket upgrades the connection and hands it to the hub, which
// owns it from then on.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "origin", c.Request.Header.Get("Origin"), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	client, err := s.hub.Attach(conn)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to attach connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to attach connection")
		return
	}
	span.SetAttributes(attribute.String("connection.id", client.ID()))
}

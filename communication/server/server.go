package server

import (
	"checkers/communication"
	"checkers/communication/protocol"
	"checkers/game"
	"checkers/player"
	"checkers/searcher/agent"
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AgentFactory builds an agent searching to the given depth.
type AgentFactory func(depth int) agent.Agent

type Server struct {
	app       *fiber.App
	newAgent  AgentFactory
	side      game.Player
	depth     int
	generator game.Generator
}

// NewServer serves move requests over HTTP and full games over a websocket. side and depth are used
// when a request does not name its own.
func NewServer(newAgent AgentFactory, side game.Player, depth int, generator game.Generator) *Server {
	s := &Server{
		app:       fiber.New(fiber.Config{DisableStartupMessage: true}),
		newAgent:  newAgent,
		side:      side,
		depth:     depth,
		generator: generator,
	}

	s.app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().Msgf("%s %s %d in %v", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	})
	s.app.Get("/healthz", s.handleHealth)
	s.app.Post("/findmove", s.handleFindMove)
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	s.app.Get("/ws", websocket.New(s.handleSocket))
	return s
}

// App exposes the fiber app, mostly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(port int) error {
	log.Info().Msgf("Serving on :%d", port)
	return s.app.Listen(":" + strconv.Itoa(port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleFindMove(c *fiber.Ctx) error {
	var req protocol.FindMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.Wrap(err, "bad request"))
	}
	b, err := protocol.DecodeBoard(req.Board)
	if err != nil {
		return badRequest(c, err)
	}
	side := s.side
	if req.Side != "" {
		if side, err = game.ParsePlayer(req.Side); err != nil {
			return badRequest(c, err)
		}
	}
	depth := s.depth
	if req.Depth != nil {
		depth = *req.Depth
	}
	if depth < 0 {
		return badRequest(c, errors.Errorf("depth must not be negative, got %d", depth))
	}

	move, metric, err := s.newAgent(depth).FindMove(b, side)
	if errors.Is(err, game.ErrNoLegalMove) {
		return c.Status(fiber.StatusConflict).JSON(protocol.ErrorResponse{Error: err.Error(), NoMove: true})
	}
	if err != nil {
		log.Error().Err(err).Msg("Search failed")
		return c.Status(fiber.StatusInternalServerError).JSON(protocol.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(protocol.FindMoveResponse{
		Move:  move.String(),
		Steps: protocol.StepsOf(move),
		Score: metric.Score,
		Nodes: metric.Nodes,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(protocol.ErrorResponse{Error: err.Error()})
}

// handleSocket plays one game per connection.
func (s *Server) handleSocket(conn *websocket.Conn) {
	log.Info().Msgf("Websocket connection from %s", conn.RemoteAddr())
	controller := player.NewController(s.newAgent(s.depth), s.side, s.generator)
	if err := controller.Run(context.Background(), socket{conn}); err != nil {
		log.Warn().Err(err).Msg("Websocket connection ended")
	}
}

// socket carries one envelope per text frame.
type socket struct {
	conn *websocket.Conn
}

var _ communication.Communicator = socket{}

func (s socket) Receive(_ context.Context) (protocol.Message, error) {
	messageType, data, err := s.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return protocol.Message{}, communication.ErrClosed
		}
		return protocol.Message{}, err
	}
	if messageType != websocket.TextMessage {
		return protocol.Message{}, errors.Wrap(protocol.ErrMalformed, "expected a text frame")
	}
	return protocol.Decode(string(data))
}

func (s socket) Send(msg protocol.Message) error {
	return s.conn.WriteMessage(websocket.TextMessage, []byte(msg.Encode()))
}

func (s socket) Close() error {
	return s.conn.Close()
}

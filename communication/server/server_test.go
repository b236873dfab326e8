package server

import (
	"checkers/communication/protocol"
	"checkers/game"
	"checkers/searcher"
	"checkers/searcher/agent"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(func(depth int) agent.Agent {
		return agent.NewEvaluationAgent(searcher.NewAlphaBeta(searcher.WithDepth(depth), searcher.WithMetrics()))
	}, game.Computer, 2, game.Generator{})
}

func postFindMove(t *testing.T, s *Server, body string) (*http.Response, []byte) {
	req := httptest.NewRequest(http.MethodPost, "/findmove", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func request(t *testing.T, req protocol.FindMoveRequest) string {
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return string(data)
}

func TestHealth(t *testing.T) {
	resp, err := newTestServer().App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFindMove(t *testing.T) {
	s := newTestServer()

	t.Run("returns a legal move", func(t *testing.T) {
		body := request(t, protocol.FindMoveRequest{Board: protocol.EncodeBoard(game.StartingBoard()), Side: "HUMAN"})

		resp, data := postFindMove(t, s, body)

		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
		var got protocol.FindMoveResponse
		require.NoError(t, json.Unmarshal(data, &got))
		move, err := game.ParseMove(got.Move)
		require.NoError(t, err)
		moves, err := game.Generator{}.MovesFor(game.StartingBoard(), game.Human)
		require.NoError(t, err)
		require.Contains(t, moves, move)
		require.Len(t, got.Steps, len(move))
		require.Positive(t, got.Nodes, "Metrics should be reported")
	})

	t.Run("takes the winning capture", func(t *testing.T) {
		b, err := game.NewBoard(
			game.Piece{Owner: game.Computer, Position: game.Square{X: 2, Y: 2}},
			game.Piece{Owner: game.Human, Position: game.Square{X: 3, Y: 3}},
		)
		require.NoError(t, err)
		depth := 1

		resp, data := postFindMove(t, s, request(t, protocol.FindMoveRequest{Board: protocol.EncodeBoard(b), Depth: &depth}))

		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
		var got protocol.FindMoveResponse
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, "2.2:4.4", got.Move)
		require.Equal(t, &[2]int{3, 3}, got.Steps[0].Captured)
		require.Equal(t, searcher.Win-1, got.Score)
	})

	t.Run("no legal move", func(t *testing.T) {
		b, err := game.NewBoard(game.Piece{Owner: game.Human, Position: game.Square{X: 3, Y: 3}})
		require.NoError(t, err)

		resp, data := postFindMove(t, s, request(t, protocol.FindMoveRequest{Board: protocol.EncodeBoard(b), Side: "COMPUTER"}))

		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
		var got protocol.ErrorResponse
		require.NoError(t, json.Unmarshal(data, &got))
		require.True(t, got.NoMove)
	})

	t.Run("bad requests", func(t *testing.T) {
		depth := -1
		for name, body := range map[string]string{
			"not json":       "{",
			"truncated tile": request(t, protocol.FindMoveRequest{Board: "Tile:[{player_name:HUMAN},{x_pos:3}] " + protocol.EncodeBoard(game.StartingBoard())}),
			"illegal board":  request(t, protocol.FindMoveRequest{Board: "Tile:[{player_name:HUMAN},{x_pos:0},{y_pos:1}] "}),
			"unknown side":   request(t, protocol.FindMoveRequest{Board: protocol.EncodeBoard(game.StartingBoard()), Side: "RED"}),
			"negative depth": request(t, protocol.FindMoveRequest{Board: protocol.EncodeBoard(game.StartingBoard()), Depth: &depth}),
		} {
			t.Run(name, func(t *testing.T) {
				resp, _ := postFindMove(t, s, body)
				require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			})
		}
	})
}

func TestSocketRequiresUpgrade(t *testing.T) {
	resp, err := newTestServer().App().Test(httptest.NewRequest(http.MethodGet, "/ws", nil))

	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

package engine

import (
	"bytes"
	"checkers/communication/protocol"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher/agent"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type remoteAgent struct {
	url    string
	depth  *int
	client *http.Client
}

// NewRemoteAgent asks the server at url for moves. A negative depth leaves the choice to the server.
func NewRemoteAgent(url string, depth int) agent.Agent {
	a := &remoteAgent{
		url:    strings.TrimSuffix(url, "/") + "/findmove",
		client: &http.Client{Timeout: time.Minute},
	}
	if depth >= 0 {
		a.depth = &depth
	}
	return a
}

// FindMove posts the board to /findmove on the agent side.
func (a *remoteAgent) FindMove(b game.Board, side game.Player) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	body, err := json.Marshal(protocol.FindMoveRequest{
		Board: protocol.EncodeBoard(b),
		Side:  side.String(),
		Depth: a.depth,
	})
	if err != nil {
		return nil, metrics.SearchMetric{}, errors.Wrap(err, "failed to encode request")
	}

	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, metrics.SearchMetric{}, errors.Wrapf(err, "failed to reach %s", a.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure protocol.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		if resp.StatusCode == http.StatusConflict && failure.NoMove {
			return nil, metrics.SearchMetric{}, errors.Wrapf(game.ErrNoLegalMove, "%s has no legal move", side)
		}
		return nil, metrics.SearchMetric{}, errors.Errorf("agent returned status %d: %s", resp.StatusCode, failure.Error)
	}

	var found protocol.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, metrics.SearchMetric{}, errors.Wrap(err, "failed to decode move")
	}
	move, err := game.ParseMove(found.Move)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	metric := metrics.SearchMetric{
		Goroutines: 1,
		Duration:   time.Since(start),
		Nodes:      found.Nodes,
		Score:      found.Score,
	}
	if a.depth != nil {
		metric.Depth = *a.depth
	}
	return move, metric, nil
}

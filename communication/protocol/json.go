package protocol

import "checkers/game"

// FindMoveRequest asks the agent for a move on a board given as a tile list.
type FindMoveRequest struct {
	Board string `json:"board"`
	Side  string `json:"side"`
	Depth *int   `json:"depth,omitempty"` // Server default when absent
}

type StepPayload struct {
	From     [2]int  `json:"from"`
	To       [2]int  `json:"to"`
	Captured *[2]int `json:"captured,omitempty"`
}

type FindMoveResponse struct {
	Move  string        `json:"move"`
	Steps []StepPayload `json:"steps"`
	Score int           `json:"score"`
	Nodes int           `json:"nodes"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	NoMove bool   `json:"no_move,omitempty"`
}

func StepsOf(m game.Move) []StepPayload {
	steps := make([]StepPayload, len(m))
	for i, s := range m {
		steps[i] = StepPayload{From: [2]int{s.From.X, s.From.Y}, To: [2]int{s.To.X, s.To.Y}}
		if s.IsCapture() {
			over := s.Over()
			steps[i].Captured = &[2]int{over.X, over.Y}
		}
	}
	return steps
}

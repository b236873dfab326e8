package metrics

import (
	"checkers/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Duration   time.Duration
	Depth      int
	Evaluate   game.Evaluate
	Nodes      int // Interior nodes whose moves were enumerated
	Leaves     int // Depth-limited or terminal nodes
	Cutoffs    int
	Score      int
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "" on a draw by turn limit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, depth int, evaluate game.Evaluate)
	AddNode()
	AddLeaf()
	AddCutoff()
	SetScore(score int)
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	evaluate   game.Evaluate
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	cutoffs    atomic.Int64
	score      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int, evaluate game.Evaluate) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.evaluate = evaluate
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.score.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetScore(score int) {
	m.score.Store(int64(score))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Depth:      m.depth,
		Evaluate:   m.evaluate,
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Score:      int(m.score.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int, evaluate game.Evaluate) {}
func (m *dummyCollector) AddNode()                                            {}
func (m *dummyCollector) AddLeaf()                                            {}
func (m *dummyCollector) AddCutoff()                                          {}
func (m *dummyCollector) SetScore(score int)                                  {}
func (m *dummyCollector) Complete() SearchMetric                              { return SearchMetric{} }

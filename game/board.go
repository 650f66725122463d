// Package game implements the corruption containment mini-game: a grid of
// nodes with random directed links over which corruption spreads each tick.
package game

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/lixenwraith/voidglitch/constants"
)

// Node is one grid cell of the board
type Node struct {
	ID        int
	X, Y      float64 // logical board px
	Corrupted bool
	Value     string
	Links     []int // directed: corruption flows from this node to Links
}

// Config holds the board tuning. Zero sizing fields take the package
// defaults; probabilities are used as given.
type Config struct {
	GridSize      int
	Spacing       float64
	Offset        float64
	InitialChance float64
	LinkChance    float64
	SpreadChance  float64
	RandomChance  float64
	GameOverLevel float64
	CleanPoints   int
	HoverRadius   float64
}

// DefaultConfig returns the standard tuning
func DefaultConfig() Config {
	return Config{
		GridSize:      constants.GameGridSize,
		Spacing:       constants.GameNodeSpacing,
		Offset:        constants.GameNodeOffset,
		InitialChance: constants.GameInitialCorruption,
		LinkChance:    constants.GameLinkChance,
		SpreadChance:  constants.GameSpreadChance,
		RandomChance:  constants.GameRandomCorruptChance,
		GameOverLevel: constants.GameOverLevel,
		CleanPoints:   constants.GameCleanPoints,
		HoverRadius:   constants.GameHoverRadius,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GridSize <= 0 {
		c.GridSize = d.GridSize
	}
	if c.Spacing <= 0 {
		c.Spacing = d.Spacing
	}
	if c.Offset <= 0 {
		c.Offset = d.Offset
	}
	if c.GameOverLevel <= 0 {
		c.GameOverLevel = d.GameOverLevel
	}
	if c.CleanPoints <= 0 {
		c.CleanPoints = d.CleanPoints
	}
	if c.HoverRadius <= 0 {
		c.HoverRadius = d.HoverRadius
	}
	return c
}

// TickResult reports the outcome of one spread step
type TickResult struct {
	Corrupted int
	Level     float64
	GameOver  bool // true only on the tick that ended the game
}

// Board is the game state. All methods are safe for concurrent use;
// callbacks run after the board lock is released.
type Board struct {
	mu       sync.Mutex
	cfg      Config
	rng      *rand.Rand
	nodes    []Node
	score    int
	level    float64
	over     bool
	selected int

	onScore    func(score int)
	onGameOver func(score int)
}

// NewBoard creates a board and deals the first game
func NewBoard(cfg Config, rng *rand.Rand) *Board {
	b := &Board{
		cfg:      cfg.withDefaults(),
		rng:      rng,
		selected: -1,
	}
	b.Reset()
	return b
}

// OnScore registers the score-change callback
func (b *Board) OnScore(fn func(score int)) {
	b.mu.Lock()
	b.onScore = fn
	b.mu.Unlock()
}

// OnGameOver registers the callback fired once per game when the threshold is crossed
func (b *Board) OnGameOver(fn func(score int)) {
	b.mu.Lock()
	b.onGameOver = fn
	b.mu.Unlock()
}

// hexValue returns a fresh 4-digit node label
func (b *Board) hexValue() string {
	const digits = "0123456789ABCDEF"
	buf := make([]byte, constants.GameValueHexWidth)
	for i := range buf {
		buf[i] = digits[b.rng.IntN(16)]
	}
	return string(buf)
}

// Reset discards all nodes and deals a new game with score 0
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.cfg.GridSize
	total := n * n
	b.nodes = make([]Node, total)
	for i := 0; i < total; i++ {
		b.nodes[i] = Node{
			ID:        i,
			X:         float64(i%n)*b.cfg.Spacing + b.cfg.Offset,
			Y:         float64(i/n)*b.cfg.Spacing + b.cfg.Offset,
			Corrupted: b.rng.Float64() < b.cfg.InitialChance,
			Value:     b.hexValue(),
		}
	}

	for i := range b.nodes {
		var links []int
		for _, j := range []int{i - 1, i + 1, i - n, i + n} {
			if j < 0 || j >= total {
				continue
			}
			if abs(j%n-i%n) > 1 {
				continue
			}
			if b.rng.Float64() < b.cfg.LinkChance {
				links = append(links, j)
			}
		}
		b.nodes[i].Links = links
	}

	b.score = 0
	b.over = false
	b.selected = -1
	b.level = b.levelLocked()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (b *Board) corruptedLocked() int {
	n := 0
	for i := range b.nodes {
		if b.nodes[i].Corrupted {
			n++
		}
	}
	return n
}

func (b *Board) levelLocked() float64 {
	if len(b.nodes) == 0 {
		return 0
	}
	return float64(b.corruptedLocked()) / float64(len(b.nodes)) * 100
}

// Tick spreads corruption along links from nodes corrupted at tick start,
// then corrupts one random node with RandomChance. No-op once over.
func (b *Board) Tick() TickResult {
	b.mu.Lock()

	if b.over || len(b.nodes) == 0 {
		res := TickResult{Corrupted: b.corruptedLocked(), Level: b.level}
		b.mu.Unlock()
		return res
	}

	sources := make([]int, 0, len(b.nodes))
	for i := range b.nodes {
		if b.nodes[i].Corrupted {
			sources = append(sources, i)
		}
	}
	for _, i := range sources {
		for _, j := range b.nodes[i].Links {
			if b.rng.Float64() < b.cfg.SpreadChance {
				b.nodes[j].Corrupted = true
			}
		}
	}

	target := b.rng.IntN(len(b.nodes))
	if b.rng.Float64() < b.cfg.RandomChance {
		b.nodes[target].Corrupted = true
	}

	b.level = b.levelLocked()
	res := TickResult{Corrupted: b.corruptedLocked(), Level: b.level}

	var cb func(int)
	if b.level > b.cfg.GameOverLevel {
		b.over = true
		res.GameOver = true
		cb = b.onGameOver
	}
	score := b.score
	b.mu.Unlock()

	if cb != nil {
		cb(score)
	}
	return res
}

// Clean clears a corrupted node and awards CleanPoints
// Returns false if the game is over, the id is invalid or the node is clean
func (b *Board) Clean(id int) bool {
	b.mu.Lock()
	if b.over || id < 0 || id >= len(b.nodes) || !b.nodes[id].Corrupted {
		b.mu.Unlock()
		return false
	}

	b.nodes[id].Corrupted = false
	b.nodes[id].Value = b.hexValue()
	b.score += b.cfg.CleanPoints
	b.level = b.levelLocked()
	score := b.score
	cb := b.onScore
	b.mu.Unlock()

	if cb != nil {
		cb(score)
	}
	return true
}

// Hover selects the nearest node strictly within HoverRadius of x,y, or none
// Returns the selected id or -1
func (b *Board) Hover(x, y float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = b.nodeAtLocked(x, y)
	return b.selected
}

// NodeAt returns the node id nearest x,y within HoverRadius, or -1
func (b *Board) NodeAt(x, y float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nodeAtLocked(x, y)
}

func (b *Board) nodeAtLocked(x, y float64) int {
	closest := -1
	best := math.Inf(1)
	for i := range b.nodes {
		d := math.Hypot(b.nodes[i].X-x, b.nodes[i].Y-y)
		if d < best && d < b.cfg.HoverRadius {
			best = d
			closest = i
		}
	}
	return closest
}

// Selected returns the hovered node id or -1
func (b *Board) Selected() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// Score returns the current score
func (b *Board) Score() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.score
}

// Level returns the corrupted percentage
func (b *Board) Level() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}

// Over reports whether the game has ended
func (b *Board) Over() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.over
}

// Corrupted returns the number of corrupted nodes
func (b *Board) Corrupted() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.corruptedLocked()
}

// Nodes returns a deep copy of the nodes
func (b *Board) Nodes() []Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Node, len(b.nodes))
	for i, n := range b.nodes {
		n.Links = append([]int(nil), n.Links...)
		out[i] = n
	}
	return out
}

// Config returns the board tuning
func (b *Board) Config() Config {
	return b.cfg
}

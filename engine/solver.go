package engine

// Solver is a greedy Klondike solver with deterministic shuffles.
//
// A Solver exclusively owns its tableau, stock, waste, and foundations for
// the duration of one simulated play. It is not safe for concurrent use;
// each independent solve gets its own instance.
type Solver struct {
	drawCount   int
	passLimit   int    // meaningful only when limitPasses
	limitPasses bool
	seed        uint32
	rng         uint64 // xorshift64 state
	initialDeck []Card // non-nil when an explicit deck bypasses shuffling

	// Tableau holds the seven play columns; index 0 is the bottom of
	// each column.
	Tableau [NumColumns][]Card
	// Stock is the face-down draw pile, consumed from the end.
	Stock []Card
	// Waste is the face-up pile fed by draws, consumed from the end.
	Waste []Card
	// Foundations are the four per-suit goal piles, indexed by Suit.
	Foundations [NumSuits][]Card

	// Moves counts individual card movements made so far.
	Moves int
	// PassesUsed counts completed stock recycles.
	PassesUsed int
}

// SolverConfig configures a Solver.
type SolverConfig struct {
	// DrawCount is the number of cards drawn from the stock per draw
	// action. Must be at least 1.
	DrawCount int
	// PassLimit caps stock recycles; nil means unlimited.
	PassLimit *int
	// Seed drives the deterministic shuffle. Taken modulo 2^32.
	Seed uint64
	// Deck, when non-nil, is dealt verbatim instead of a shuffled
	// standard deck. It may contain duplicates or ad-hoc layouts for
	// controlled testing.
	Deck []Card
}

// DefaultSolverConfig returns the classic draw-three configuration with
// unlimited passes.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{DrawCount: 3}
}

// NewSolver validates cfg, creates a solver, and deals the opening layout.
func NewSolver(cfg SolverConfig) (*Solver, error) {
	if cfg.DrawCount < 1 {
		return nil, ErrDrawCount
	}
	if cfg.PassLimit != nil && *cfg.PassLimit < 0 {
		return nil, ErrPassLimitNegative
	}
	s := &Solver{
		drawCount: cfg.DrawCount,
		seed:      uint32(cfg.Seed & 0xFFFFFFFF),
	}
	if cfg.PassLimit != nil {
		s.passLimit = *cfg.PassLimit
		s.limitPasses = true
	}
	if cfg.Deck != nil {
		s.initialDeck = make([]Card, len(cfg.Deck))
		copy(s.initialDeck, cfg.Deck)
	}
	s.Setup()
	return s, nil
}

// DrawCount returns the configured draw size.
func (s *Solver) DrawCount() int { return s.drawCount }

// Seed returns the masked 32-bit shuffle seed.
func (s *Solver) Seed() uint32 { return s.seed }

// nextRand advances the inline xorshift64 generator.
func (s *Solver) nextRand() uint64 {
	x := s.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.rng = x
	return x
}

// randN returns a random number in [0, n).
func (s *Solver) randN(n uint64) uint64 {
	return s.nextRand() % n
}

// buildDeck returns the deck to deal: a copy of the injected deck, or a
// freshly shuffled standard deck.
func (s *Solver) buildDeck() []Card {
	if s.initialDeck != nil {
		deck := make([]Card, len(s.initialDeck))
		copy(deck, s.initialDeck)
		return deck
	}
	deck := NewDeck()
	s.rng = uint64(s.seed)
	if s.rng == 0 {
		s.rng = 1 // xorshift can't start at 0
	}
	// Fisher-Yates shuffle.
	for i := len(deck) - 1; i > 0; i-- {
		j := int(s.randN(uint64(i + 1)))
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// Setup deals a fresh game. Column i receives i+1 cards with only the last
// face-up; the remainder becomes the face-down stock. Counters reset.
func (s *Solver) Setup() {
	deck := s.buildDeck()

	for col := 0; col < NumColumns; col++ {
		s.Tableau[col] = s.Tableau[col][:0]
		for row := 0; row <= col; row++ {
			card := deck[len(deck)-1]
			deck = deck[:len(deck)-1]
			card.FaceUp = row == col
			s.Tableau[col] = append(s.Tableau[col], card)
		}
	}

	s.Stock = deck
	for i := range s.Stock {
		s.Stock[i].FaceUp = false
	}

	s.Waste = s.Waste[:0]
	for suit := range s.Foundations {
		s.Foundations[suit] = s.Foundations[suit][:0]
	}
	s.Moves = 0
	s.PassesUsed = 0
}

// CanMoveToFoundation reports whether card may join its suit's foundation:
// rank 1 onto an empty pile, otherwise exactly one above the current top.
func (s *Solver) CanMoveToFoundation(card Card) bool {
	pile := s.Foundations[card.Suit]
	if len(pile) == 0 {
		return card.Rank == RankAce
	}
	return pile[len(pile)-1].Rank == card.Rank-1
}

func (s *Solver) moveToFoundation(card Card) {
	s.Foundations[card.Suit] = append(s.Foundations[card.Suit], card)
	s.Moves++
}

// flipTableauIfNeeded turns the newly exposed top card of a column face up.
func (s *Solver) flipTableauIfNeeded(col int) {
	column := s.Tableau[col]
	if len(column) > 0 && !column[len(column)-1].FaceUp {
		column[len(column)-1].FaceUp = true
	}
}

// CanStackOnTableau reports whether card may be placed on column: a King
// onto an empty column, otherwise onto a face-up top card of the opposite
// color and exactly one rank higher.
func (s *Solver) CanStackOnTableau(card Card, column []Card) bool {
	if len(column) == 0 {
		return card.Rank == RankKing
	}
	top := column[len(column)-1]
	if !top.FaceUp {
		return false
	}
	return top.Color() != card.Color() && top.Rank == card.Rank+1
}

// moveStack relocates the cards from startIdx onward from src to dest.
func (s *Solver) moveStack(src, startIdx, dest int) {
	column := s.Tableau[src]
	stack := column[startIdx:]
	s.Tableau[dest] = append(s.Tableau[dest], stack...)
	s.Tableau[src] = column[:startIdx]
	s.Moves++
	s.flipTableauIfNeeded(src)
}

// DrawFromStock flips up to the configured draw count of cards from the
// stock onto the waste, last card drawn ending on top. Returns false when
// the stock is empty.
func (s *Solver) DrawFromStock() bool {
	if len(s.Stock) == 0 {
		return false
	}
	n := s.drawCount
	if n > len(s.Stock) {
		n = len(s.Stock)
	}
	for i := 0; i < n; i++ {
		card := s.Stock[len(s.Stock)-1]
		s.Stock = s.Stock[:len(s.Stock)-1]
		card.FaceUp = true
		s.Waste = append(s.Waste, card)
	}
	s.Moves++
	return true
}

// RecycleStock reverses the waste back into the face-down stock and
// increments the pass counter. Returns false when the waste is empty or
// the pass limit has been reached.
func (s *Solver) RecycleStock() bool {
	if len(s.Waste) == 0 {
		return false
	}
	if s.limitPasses && s.PassesUsed >= s.passLimit {
		return false
	}
	for i := len(s.Waste) - 1; i >= 0; i-- {
		card := s.Waste[i]
		card.FaceUp = false
		s.Stock = append(s.Stock, card)
	}
	s.Waste = s.Waste[:0]
	s.PassesUsed++
	return true
}

// FoundationCount returns the total number of cards on the foundations.
func (s *Solver) FoundationCount() int {
	total := 0
	for _, pile := range s.Foundations {
		total += len(pile)
	}
	return total
}

// IsWon reports whether all 52 cards have reached the foundations.
func (s *Solver) IsWon() bool { return s.FoundationCount() == DeckSize }

package engine

import (
	"errors"
	"reflect"
	"testing"
)

// newSeededSolver builds a solver with the given seed and defaults.
func newSeededSolver(t *testing.T, seed uint64) *Solver {
	t.Helper()
	cfg := DefaultSolverConfig()
	cfg.Seed = seed
	s, err := NewSolver(cfg)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	return s
}

// newDeckSolver builds a solver dealing the given deck verbatim.
func newDeckSolver(t *testing.T, drawCount int, passLimit *int, deck []Card) *Solver {
	t.Helper()
	s, err := NewSolver(SolverConfig{DrawCount: drawCount, PassLimit: passLimit, Deck: deck})
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	return s
}

func TestNewSolverValidation(t *testing.T) {
	if _, err := NewSolver(SolverConfig{DrawCount: 0}); !errors.Is(err, ErrDrawCount) {
		t.Errorf("DrawCount=0: got %v, want ErrDrawCount", err)
	}
	neg := -1
	if _, err := NewSolver(SolverConfig{DrawCount: 3, PassLimit: &neg}); !errors.Is(err, ErrPassLimitNegative) {
		t.Errorf("PassLimit=-1: got %v, want ErrPassLimitNegative", err)
	}
}

func TestSetupInvariants(t *testing.T) {
	s := newSeededSolver(t, 42)

	tableauCount := 0
	for col, column := range s.Tableau {
		if len(column) != col+1 {
			t.Errorf("column %d has %d cards, want %d", col, len(column), col+1)
		}
		tableauCount += len(column)
		for row, card := range column {
			wantFaceUp := row == len(column)-1
			if card.FaceUp != wantFaceUp {
				t.Errorf("column %d row %d: FaceUp=%v, want %v", col, row, card.FaceUp, wantFaceUp)
			}
		}
	}
	if tableauCount != 28 {
		t.Errorf("tableau has %d cards, want 28", tableauCount)
	}
	if len(s.Stock) != 24 {
		t.Errorf("stock has %d cards, want 24", len(s.Stock))
	}
	for _, card := range s.Stock {
		if card.FaceUp {
			t.Error("stock cards must be face down")
			break
		}
	}
	if len(s.Waste) != 0 {
		t.Errorf("waste has %d cards, want 0", len(s.Waste))
	}
	if s.FoundationCount() != 0 {
		t.Errorf("foundations have %d cards, want 0", s.FoundationCount())
	}
}

func TestDeterministicShuffle(t *testing.T) {
	a := newSeededSolver(t, 12345)
	b := newSeededSolver(t, 12345)
	if !reflect.DeepEqual(a.Tableau, b.Tableau) {
		t.Error("same seed should deal identical tableaus")
	}
	if !reflect.DeepEqual(a.Stock, b.Stock) {
		t.Error("same seed should deal identical stocks")
	}
}

func TestSeedMaskedTo32Bits(t *testing.T) {
	a := newSeededSolver(t, 77)
	b := newSeededSolver(t, 77+(1<<32))
	if a.Seed() != b.Seed() {
		t.Fatalf("seeds differ: %d vs %d", a.Seed(), b.Seed())
	}
	if !reflect.DeepEqual(a.Tableau, b.Tableau) || !reflect.DeepEqual(a.Stock, b.Stock) {
		t.Error("seeds equal mod 2^32 should produce identical deals")
	}
}

func TestSetupIsRepeatable(t *testing.T) {
	s := newSeededSolver(t, 9)
	tableau := make([][]Card, NumColumns)
	for i, col := range s.Tableau {
		tableau[i] = append([]Card(nil), col...)
	}
	stock := append([]Card(nil), s.Stock...)

	s.Play(50)
	s.Setup()

	for i := range tableau {
		if !reflect.DeepEqual(tableau[i], s.Tableau[i]) {
			t.Fatalf("column %d changed after re-setup", i)
		}
	}
	if !reflect.DeepEqual(stock, s.Stock) {
		t.Error("stock changed after re-setup")
	}
	if s.Moves != 0 || s.PassesUsed != 0 {
		t.Error("counters should reset on Setup")
	}
}

// ---------------------------------------------------------------------------
// Card placement rules
// ---------------------------------------------------------------------------

func TestCanMoveToFoundation(t *testing.T) {
	s := newSeededSolver(t, 1)

	if !s.CanMoveToFoundation(Card{Rank: RankAce, Suit: SuitHearts}) {
		t.Error("ace should start an empty foundation")
	}
	if s.CanMoveToFoundation(Card{Rank: 2, Suit: SuitHearts}) {
		t.Error("two should not start an empty foundation")
	}

	s.Foundations[SuitHearts] = []Card{{Rank: RankAce, Suit: SuitHearts, FaceUp: true}}
	if !s.CanMoveToFoundation(Card{Rank: 2, Suit: SuitHearts}) {
		t.Error("two of hearts should follow the ace")
	}
	if s.CanMoveToFoundation(Card{Rank: 3, Suit: SuitHearts}) {
		t.Error("three of hearts cannot skip the two")
	}
	if s.CanMoveToFoundation(Card{Rank: 2, Suit: SuitSpades}) {
		t.Error("spades play on their own foundation")
	}
}

func TestCanStackOnTableau(t *testing.T) {
	s := newSeededSolver(t, 1)

	if !s.CanStackOnTableau(Card{Rank: RankKing, Suit: SuitSpades}, nil) {
		t.Error("king should be allowed on an empty column")
	}
	if s.CanStackOnTableau(Card{Rank: RankQueen, Suit: SuitSpades}, nil) {
		t.Error("only kings go on empty columns")
	}

	redSeven := []Card{{Rank: 7, Suit: SuitHearts, FaceUp: true}}
	if !s.CanStackOnTableau(Card{Rank: 6, Suit: SuitClubs}, redSeven) {
		t.Error("black six should stack on red seven")
	}
	if s.CanStackOnTableau(Card{Rank: 6, Suit: SuitDiamonds}, redSeven) {
		t.Error("red six should not stack on red seven")
	}
	if s.CanStackOnTableau(Card{Rank: 5, Suit: SuitClubs}, redSeven) {
		t.Error("ranks must descend by exactly one")
	}

	faceDownSeven := []Card{{Rank: 7, Suit: SuitHearts}}
	if s.CanStackOnTableau(Card{Rank: 6, Suit: SuitClubs}, faceDownSeven) {
		t.Error("face-down tops accept nothing")
	}
}

// ---------------------------------------------------------------------------
// Draw / recycle
// ---------------------------------------------------------------------------

// orderedDeck returns 52 distinct cards in canonical order for layout
// assertions.
func orderedDeck() []Card { return NewDeck() }

func TestDrawFromStock(t *testing.T) {
	deck := orderedDeck()
	s := newDeckSolver(t, 3, nil, deck)

	// The deal consumes from the end of the deck, so the stock is
	// deck[:24] and the next draws come from its top (index 23).
	if !s.DrawFromStock() {
		t.Fatal("draw from full stock should succeed")
	}
	if len(s.Waste) != 3 || len(s.Stock) != 21 {
		t.Fatalf("after draw: waste=%d stock=%d, want 3/21", len(s.Waste), len(s.Stock))
	}
	top := s.Waste[len(s.Waste)-1]
	want := deck[21] // third card drawn ends on top
	if top.Rank != want.Rank || top.Suit != want.Suit {
		t.Errorf("waste top = %v, want %v", top, want)
	}
	if !top.FaceUp {
		t.Error("drawn cards must be face up")
	}
	if s.Moves != 1 {
		t.Errorf("a draw counts one move, got %d", s.Moves)
	}
}

func TestDrawShortStock(t *testing.T) {
	deck := orderedDeck()
	s := newDeckSolver(t, 5, nil, deck)
	for i := 0; i < 4; i++ {
		if !s.DrawFromStock() {
			t.Fatalf("draw %d should succeed", i+1)
		}
	}
	// 24 = 5+5+5+5+4: the last draw takes the short remainder.
	if !s.DrawFromStock() {
		t.Fatal("short final draw should succeed")
	}
	if len(s.Stock) != 0 || len(s.Waste) != 24 {
		t.Errorf("stock=%d waste=%d, want 0/24", len(s.Stock), len(s.Waste))
	}
	if s.DrawFromStock() {
		t.Error("draw from empty stock should fail")
	}
}

func TestRecycleStockRestoresOrder(t *testing.T) {
	deck := orderedDeck()
	s := newDeckSolver(t, 3, nil, deck)

	for s.DrawFromStock() {
	}
	firstDrawn := deck[23]

	if !s.RecycleStock() {
		t.Fatal("recycle of a full waste should succeed")
	}
	if len(s.Waste) != 0 || len(s.Stock) != 24 {
		t.Fatalf("after recycle: waste=%d stock=%d", len(s.Waste), len(s.Stock))
	}
	for _, card := range s.Stock {
		if card.FaceUp {
			t.Error("recycled cards must be face down")
			break
		}
	}
	if s.PassesUsed != 1 {
		t.Errorf("PassesUsed=%d, want 1", s.PassesUsed)
	}

	// Drawing again must replay the original order.
	if !s.DrawFromStock() {
		t.Fatal("draw after recycle should succeed")
	}
	got := s.Waste[0]
	if got.Rank != firstDrawn.Rank || got.Suit != firstDrawn.Suit {
		t.Errorf("first card after recycle = %v, want %v", got, firstDrawn)
	}
}

func TestRecycleStockEmptyWaste(t *testing.T) {
	s := newSeededSolver(t, 3)
	if s.RecycleStock() {
		t.Error("recycle with empty waste should fail")
	}
}

// Concrete scenario D: a pass limit of one allows exactly one recycle.
func TestRecycleStockPassLimit(t *testing.T) {
	limit := 1
	s := newDeckSolver(t, 3, &limit, orderedDeck())

	for s.DrawFromStock() {
	}
	if !s.RecycleStock() {
		t.Fatal("first recycle should succeed under pass_limit=1")
	}
	for s.DrawFromStock() {
	}
	if s.RecycleStock() {
		t.Error("second recycle should fail under pass_limit=1")
	}
}

// ---------------------------------------------------------------------------
// Greedy strategies
// ---------------------------------------------------------------------------

// Concrete scenario C: a deck of 52 identical aces promotes at least one
// card in a single forced-move resolution.
func TestForcedMovesPromoteAce(t *testing.T) {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = Card{Rank: RankAce, Suit: SuitHearts}
	}
	s := newDeckSolver(t, 3, nil, deck)

	if !s.ResolveForcedMoves() {
		t.Fatal("forced-move resolution should act on an exposed ace")
	}
	if s.FoundationCount() < 1 {
		t.Errorf("FoundationCount=%d, want >= 1", s.FoundationCount())
	}
}

func TestWasteToFoundationBeatsTableau(t *testing.T) {
	s := newDeckSolver(t, 1, nil, orderedDeck())
	// Hand-build a state where both the waste top and a tableau top are
	// promotable; the waste must win.
	for col := range s.Tableau {
		s.Tableau[col] = s.Tableau[col][:0]
	}
	s.Stock = s.Stock[:0]
	s.Waste = []Card{{Rank: RankAce, Suit: SuitHearts, FaceUp: true}}
	s.Tableau[0] = []Card{{Rank: RankAce, Suit: SuitSpades, FaceUp: true}}

	if !s.tryPromoteWasteToFoundation() {
		t.Fatal("waste ace should promote")
	}
	if len(s.Foundations[SuitHearts]) != 1 {
		t.Error("hearts foundation should hold the waste ace")
	}
}

func TestWasteToTableauPriorities(t *testing.T) {
	s := newDeckSolver(t, 1, nil, orderedDeck())
	for col := range s.Tableau {
		s.Tableau[col] = s.Tableau[col][:0]
	}
	s.Stock = s.Stock[:0]

	// Waste top: red five. Column 0 accepts it with a fully face-up
	// stack (priority 1); column 2 accepts it while hiding a face-down
	// card (priority 3). The hidden-card column must win despite the
	// higher index.
	s.Waste = []Card{{Rank: 5, Suit: SuitHearts, FaceUp: true}}
	s.Tableau[0] = []Card{{Rank: 6, Suit: SuitSpades, FaceUp: true}}
	s.Tableau[2] = []Card{
		{Rank: RankQueen, Suit: SuitDiamonds},
		{Rank: 6, Suit: SuitClubs, FaceUp: true},
	}

	if !s.tryMoveWasteToTableau() {
		t.Fatal("waste five should relocate")
	}
	if len(s.Tableau[2]) != 3 {
		t.Errorf("column 2 should receive the five, has %d cards", len(s.Tableau[2]))
	}
	if len(s.Tableau[0]) != 1 {
		t.Error("column 0 should be untouched")
	}
}

func TestWasteKingToFirstEmptyColumn(t *testing.T) {
	s := newDeckSolver(t, 1, nil, orderedDeck())
	for col := range s.Tableau {
		s.Tableau[col] = s.Tableau[col][:0]
	}
	s.Stock = s.Stock[:0]
	s.Waste = []Card{{Rank: RankKing, Suit: SuitHearts, FaceUp: true}}

	if !s.tryMoveWasteToTableau() {
		t.Fatal("king should move to an empty column")
	}
	if len(s.Tableau[0]) != 1 || s.Tableau[0][0].Rank != RankKing {
		t.Error("king should land on the first empty column")
	}
}

func TestTableauMoveRequiresProgress(t *testing.T) {
	s := newDeckSolver(t, 1, nil, orderedDeck())
	for col := range s.Tableau {
		s.Tableau[col] = s.Tableau[col][:0]
	}
	s.Stock = s.Stock[:0]

	// A fully face-up run moving onto another column uncovers nothing,
	// so the greedy strategy refuses it.
	s.Tableau[0] = []Card{{Rank: 5, Suit: SuitHearts, FaceUp: true}}
	s.Tableau[1] = []Card{{Rank: 6, Suit: SuitSpades, FaceUp: true}}
	if s.tryMoveTableauToTableau() {
		t.Error("move without hidden-card progress should be refused")
	}

	// The same move is taken once it exposes a hidden card.
	s.Tableau[0] = []Card{
		{Rank: RankQueen, Suit: SuitDiamonds},
		{Rank: 5, Suit: SuitHearts, FaceUp: true},
	}
	if !s.tryMoveTableauToTableau() {
		t.Fatal("move exposing a hidden card should be taken")
	}
	if !s.Tableau[0][0].FaceUp {
		t.Error("exposed card should flip face up")
	}
	if len(s.Tableau[1]) != 2 {
		t.Errorf("destination should hold the run, has %d cards", len(s.Tableau[1]))
	}
}

func TestTableauKingToEmptyColumn(t *testing.T) {
	s := newDeckSolver(t, 1, nil, orderedDeck())
	for col := range s.Tableau {
		s.Tableau[col] = s.Tableau[col][:0]
	}
	s.Stock = s.Stock[:0]

	// A bare king run with no hidden cards beneath gains nothing from an
	// empty column.
	s.Tableau[3] = []Card{{Rank: RankKing, Suit: SuitClubs, FaceUp: true}}
	if s.tryMoveTableauToTableau() {
		t.Error("bare king should stay put")
	}

	// With a hidden card beneath, the king vacates to the empty column.
	s.Tableau[3] = []Card{
		{Rank: 2, Suit: SuitHearts},
		{Rank: RankKing, Suit: SuitClubs, FaceUp: true},
	}
	if !s.tryMoveTableauToTableau() {
		t.Fatal("king atop a hidden card should move to an empty column")
	}
	if len(s.Tableau[0]) != 1 || s.Tableau[0][0].Rank != RankKing {
		t.Error("king should occupy the first empty column")
	}
	if len(s.Tableau[3]) != 1 || !s.Tableau[3][0].FaceUp {
		t.Error("hidden card should be exposed and flipped")
	}
}

// ---------------------------------------------------------------------------
// Play loop
// ---------------------------------------------------------------------------

func TestPlayRespectsStepCap(t *testing.T) {
	s := newSeededSolver(t, 31337)
	res := s.Play(3)
	if res.Steps > 3 {
		t.Errorf("Steps=%d, want <= 3", res.Steps)
	}
}

func TestPlayResultAccounting(t *testing.T) {
	s := newSeededSolver(t, 99)
	res := s.Play(DefaultMaxSteps)

	tableauCount := 0
	for _, column := range s.Tableau {
		tableauCount += len(column)
	}
	total := tableauCount + res.Foundations + res.StockRemaining + res.Waste
	if total != DeckSize {
		t.Errorf("cards across zones = %d, want %d", total, DeckSize)
	}
	if res.DrawCount != 3 {
		t.Errorf("DrawCount=%d, want 3", res.DrawCount)
	}
	if res.Seed == nil || *res.Seed != 99 {
		t.Errorf("Seed=%v, want 99", res.Seed)
	}
	if res.Won != (res.Foundations == DeckSize) {
		t.Error("Won flag must match a full foundation set")
	}
	if res.Moves != s.Moves || res.PassesUsed != s.PassesUsed {
		t.Error("result counters must mirror solver counters")
	}
}

func TestPlayTraceIsDeterministic(t *testing.T) {
	a := newSeededSolver(t, 2024)
	b := newSeededSolver(t, 2024)
	ra := a.Play(DefaultMaxSteps)
	rb := b.Play(DefaultMaxSteps)
	if !reflect.DeepEqual(ra, rb) {
		t.Errorf("same seed diverged: %+v vs %+v", ra, rb)
	}
}

func TestPlayWithInjectedDeckHasNilSeed(t *testing.T) {
	s := newDeckSolver(t, 3, nil, orderedDeck())
	res := s.Play(10)
	if res.Seed != nil {
		t.Errorf("Seed=%v, want nil for explicit decks", *res.Seed)
	}
}

func TestPlayTerminatesUnderPassLimit(t *testing.T) {
	// With a finite pass limit the loop must reach win or stuck well
	// before the fail-safe cap.
	limit := 3
	s := newDeckSolver(t, 1, &limit, orderedDeck())
	res := s.Play(DefaultMaxSteps)
	if res.Steps >= DefaultMaxSteps {
		t.Errorf("solver hit the fail-safe cap: %+v", res)
	}
	if res.Moves == 0 {
		t.Error("solver should make at least one move on the ordered deck")
	}
	if res.PassesUsed > limit {
		t.Errorf("PassesUsed=%d exceeds limit %d", res.PassesUsed, limit)
	}
}

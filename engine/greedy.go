package engine

// Greedy strategy. Forced moves are applied eagerly in a fixed priority
// order before the solver ever draws or recycles:
//
//  1. promote top of waste to its foundation
//  2. promote a tableau top card to its foundation (first column wins)
//  3. move the top waste card onto a tableau column
//  4. move a maximal face-up run between tableau columns
//
// This exact order is part of the solver's contract: a given seed must
// always produce the same play trace.

// tryPromoteWasteToFoundation promotes the top waste card when legal.
func (s *Solver) tryPromoteWasteToFoundation() bool {
	if len(s.Waste) == 0 {
		return false
	}
	card := s.Waste[len(s.Waste)-1]
	if !s.CanMoveToFoundation(card) {
		return false
	}
	s.Waste = s.Waste[:len(s.Waste)-1]
	s.moveToFoundation(card)
	return true
}

// tryPromoteTableauToFoundation scans columns in index order and promotes
// the first eligible top card. One promotion per pass.
func (s *Solver) tryPromoteTableauToFoundation() bool {
	for col := range s.Tableau {
		column := s.Tableau[col]
		if len(column) == 0 || !column[len(column)-1].FaceUp {
			continue
		}
		card := column[len(column)-1]
		if !s.CanMoveToFoundation(card) {
			continue
		}
		s.Tableau[col] = column[:len(column)-1]
		s.moveToFoundation(card)
		s.flipTableauIfNeeded(col)
		return true
	}
	return false
}

// tryMoveWasteToTableau relocates the top waste card onto the best legal
// column. Columns hiding face-down cards are preferred (flipping one
// progresses the game), then empty columns, then any other legal column;
// the first column index found at the highest priority wins.
func (s *Solver) tryMoveWasteToTableau() bool {
	if len(s.Waste) == 0 {
		return false
	}
	card := s.Waste[len(s.Waste)-1]
	bestTarget := -1
	bestPriority := -1
	for col := range s.Tableau {
		column := s.Tableau[col]
		if !s.CanStackOnTableau(card, column) {
			continue
		}
		priority := 0
		switch {
		case len(column) == 0:
			priority = 2
		case hasFaceDown(column):
			priority = 3
		case column[len(column)-1].FaceUp:
			priority = 1
		}
		if priority > bestPriority {
			bestTarget = col
			bestPriority = priority
		}
	}
	if bestTarget < 0 {
		return false
	}
	s.Waste = s.Waste[:len(s.Waste)-1]
	s.Tableau[bestTarget] = append(s.Tableau[bestTarget], card)
	s.Moves++
	return true
}

func hasFaceDown(column []Card) bool {
	for _, c := range column {
		if !c.FaceUp {
			return true
		}
	}
	return false
}

// tryMoveTableauToTableau relocates the maximal face-up run of a column
// onto another column. Runs only move when they uncover a hidden card, or
// when a King-based run fills an empty column from atop hidden cards.
// Columns are scanned in index order; the first legal pair wins.
func (s *Solver) tryMoveTableauToTableau() bool {
	for src := range s.Tableau {
		column := s.Tableau[src]
		if len(column) == 0 {
			continue
		}
		firstFaceUp := -1
		for i, card := range column {
			if card.FaceUp {
				firstFaceUp = i
				break
			}
		}
		if firstFaceUp < 0 {
			continue
		}
		base := column[firstFaceUp]
		hasHidden := firstFaceUp > 0
		for dest := range s.Tableau {
			if dest == src {
				continue
			}
			destColumn := s.Tableau[dest]
			if !s.CanStackOnTableau(base, destColumn) {
				continue
			}
			if len(destColumn) > 0 && !hasHidden {
				continue
			}
			if len(destColumn) == 0 && (base.Rank != RankKing || !hasHidden) {
				continue
			}
			s.moveStack(src, firstFaceUp, dest)
			return true
		}
	}
	return false
}

// ResolveForcedMoves repeatedly applies forced moves in priority order
// until none apply. Returns true when at least one move was made.
func (s *Solver) ResolveForcedMoves() bool {
	moved := false
	for {
		if s.tryPromoteWasteToFoundation() {
			moved = true
			continue
		}
		if s.tryPromoteTableauToFoundation() {
			moved = true
			continue
		}
		if s.tryMoveWasteToTableau() {
			moved = true
			continue
		}
		if s.tryMoveTableauToTableau() {
			moved = true
			continue
		}
		return moved
	}
}

// Result summarizes one full play, sufficient for scoring or logging the
// attempt without re-inspecting solver state.
type Result struct {
	Won        bool `json:"won"`
	Moves      int  `json:"moves"`
	PassesUsed int  `json:"passes_used"`
	// Seed is nil when an explicit deck bypassed shuffling.
	Seed           *uint32 `json:"seed"`
	DrawCount      int     `json:"draw_count"`
	Foundations    int     `json:"foundations"`
	StockRemaining int     `json:"stock_remaining"`
	Waste          int     `json:"waste"`
	Steps          int     `json:"steps"`
}

// DefaultMaxSteps is the fail-safe iteration cap for Play. It is not
// expected to trigger under correct play.
const DefaultMaxSteps = 5000

// Play runs the greedy loop until win, stuck, or the step cap. One step is
// one iteration of the outer loop, not one move.
func (s *Solver) Play(maxSteps int) Result {
	steps := 0
	for steps < maxSteps && !s.IsWon() {
		steps++
		if s.ResolveForcedMoves() {
			continue
		}
		if s.DrawFromStock() {
			continue
		}
		if !s.RecycleStock() {
			break
		}
	}

	res := Result{
		Won:            s.IsWon(),
		Moves:          s.Moves,
		PassesUsed:     s.PassesUsed,
		DrawCount:      s.drawCount,
		Foundations:    s.FoundationCount(),
		StockRemaining: len(s.Stock),
		Waste:          len(s.Waste),
		Steps:          steps,
	}
	if s.initialDeck == nil {
		seed := s.seed
		res.Seed = &seed
	}
	return res
}

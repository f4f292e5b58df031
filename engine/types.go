// Package engine implements the solitaire rules engine and the greedy
// Klondike solver.
//
// The package is dependency-free and purely computational: a RuleProfile is
// an immutable policy evaluated against caller-supplied move/state views,
// and a Solver owns its entire game state for the duration of one simulated
// play.
package engine

// Suit identifies one of the four French suits.
type Suit uint8

const (
	SuitSpades Suit = iota
	SuitHearts
	SuitClubs
	SuitDiamonds

	NumSuits = 4
)

// Color is the red/black classification used by tableau stacking.
type Color uint8

const (
	ColorBlack Color = iota
	ColorRed
)

// Rank bounds. Ranks run Ace (1) through King (13).
const (
	RankAce   uint8 = 1
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

const (
	NumColumns = 7
	DeckSize   = 52
)

var suitNames = [NumSuits]string{"spades", "hearts", "clubs", "diamonds"}

// String returns the lowercase suit name.
func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return "unknown"
}

// Color returns the color of the suit.
func (s Suit) Color() Color {
	if s == SuitHearts || s == SuitDiamonds {
		return ColorRed
	}
	return ColorBlack
}

// Card is a playing card. Cards are value-like; identity is rank+suit, so a
// controlled deck may contain duplicates for testing.
type Card struct {
	Rank   uint8
	Suit   Suit
	FaceUp bool
}

// Color returns the card's color.
func (c Card) Color() Color { return c.Suit.Color() }

// Label returns the rank label (A, 2–10, J, Q, K).
func (c Card) Label() string {
	switch c.Rank {
	case RankAce:
		return "A"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case 10:
		return "10"
	default:
		return string('0' + rune(c.Rank))
	}
}

// String renders a short debug form such as "AS" or "10H".
func (c Card) String() string {
	suitInitials := [NumSuits]string{"S", "H", "C", "D"}
	if int(c.Suit) >= len(suitInitials) {
		return c.Label() + "?"
	}
	return c.Label() + suitInitials[c.Suit]
}

// NewDeck returns the 52-card deck in canonical (unshuffled) order, all
// cards face down.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Suit(0); s < NumSuits; s++ {
		for r := RankAce; r <= RankKing; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

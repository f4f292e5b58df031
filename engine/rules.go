package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RuleProfile is an immutable rules configuration for a solitaire variant.
// It carries no internal state; legality checks are pure functions of the
// profile, a game-state snapshot, and a proposed move.
//
// Passes holds the raw stock-recycle limit as configured: a named token
// (string), a number, or nil for unlimited. Use PassLimit to normalize it.
type RuleProfile struct {
	Draw               int    `json:"draw"`
	Passes             any    `json:"passes"`
	Supermove          string `json:"supermove"`
	FoundationTakeback bool   `json:"foundation_takeback"`
	PeekXray           bool   `json:"peek_xray"`
	AutoplaySafeOnly   bool   `json:"autoplay_safe_only"`
	UndoUnlimited      bool   `json:"undo_unlimited"`
}

// passLimitTokens maps named pass-limit tokens to their numeric limit.
// A nil entry means unlimited.
var passLimitTokens = map[string]*int{
	"unlimited": nil,
	"infinite":  nil,
	"max_relax": nil,
	"three":     intPtr(3),
	"triple":    intPtr(3),
	"one":       intPtr(1),
	"single":    intPtr(1),
	"none":      intPtr(0),
}

// supermoveStrength maps supermove mode tokens to their strength tier.
var supermoveStrength = map[string]int{
	"none":     0,
	"standard": 1,
	"relaxed":  2,
}

// defaultSupermoveTier is the tier assumed for moves that declare an
// unrecognized (or no) strength token.
const defaultSupermoveTier = 1

func intPtr(n int) *int { return &n }

// PassLimit normalizes the profile's Passes field.
// It returns (0, true, nil) for an unlimited profile and
// (limit, false, nil) otherwise. Booleans and unsupported types yield
// ErrPassLimitType; negative, non-finite, or unparseable values yield
// ErrPassLimitValue. Normalization is pure and cheap; it is re-derived on
// every call.
func (p RuleProfile) PassLimit() (limit int, unlimited bool, err error) {
	switch v := p.Passes.(type) {
	case nil:
		return 0, true, nil
	case bool:
		return 0, false, fmt.Errorf("%w: bool", ErrPassLimitType)
	case string:
		token := strings.ToLower(strings.TrimSpace(v))
		if named, ok := passLimitTokens[token]; ok {
			if named == nil {
				return 0, true, nil
			}
			return *named, false, nil
		}
		n, perr := strconv.Atoi(token)
		if perr != nil {
			return 0, false, fmt.Errorf("%w: %q", ErrPassLimitValue, v)
		}
		if n < 0 {
			return 0, false, fmt.Errorf("%w: %d", ErrPassLimitValue, n)
		}
		return n, false, nil
	case int:
		return normalizeIntLimit(int64(v))
	case int8:
		return normalizeIntLimit(int64(v))
	case int16:
		return normalizeIntLimit(int64(v))
	case int32:
		return normalizeIntLimit(int64(v))
	case int64:
		return normalizeIntLimit(v)
	case uint:
		return normalizeUintLimit(uint64(v))
	case uint8:
		return int(v), false, nil
	case uint16:
		return int(v), false, nil
	case uint32:
		return int(v), false, nil
	case uint64:
		return normalizeUintLimit(v)
	case float32:
		return normalizeFloatLimit(float64(v))
	case float64:
		return normalizeFloatLimit(v)
	default:
		return 0, false, fmt.Errorf("%w: %T", ErrPassLimitType, v)
	}
}

func normalizeIntLimit(n int64) (int, bool, error) {
	if n < 0 {
		return 0, false, fmt.Errorf("%w: %d", ErrPassLimitValue, n)
	}
	return int(n), false, nil
}

func normalizeUintLimit(n uint64) (int, bool, error) {
	if n > math.MaxInt {
		return 0, false, fmt.Errorf("%w: %d", ErrPassLimitValue, n)
	}
	return int(n), false, nil
}

func normalizeFloatLimit(f float64) (int, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("%w: non-finite float", ErrPassLimitValue)
	}
	if f < 0 {
		return 0, false, fmt.Errorf("%w: %v", ErrPassLimitValue, f)
	}
	return int(math.Trunc(f)), false, nil
}

// PassesRemaining reports how many stock recycles remain for the given
// state snapshot. It returns (0, true, nil) for unlimited profiles. The
// recorded pass count is read defensively from passes_made (or its
// synonyms) and never drives the result negative.
func (p RuleProfile) PassesRemaining(state any) (remaining int, unlimited bool, err error) {
	limit, unlimited, err := p.PassLimit()
	if err != nil {
		return 0, false, err
	}
	if unlimited {
		return 0, true, nil
	}
	made := passesMade(state)
	if made >= limit {
		return 0, false, nil
	}
	return limit - made, false, nil
}

// ToJSON serializes the profile to its flat wire form.
func (p RuleProfile) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// FromJSON reconstructs a profile from its wire form. Unknown extra fields
// are ignored; only the seven recognized field names are extracted.
func FromJSON(payload []byte) (RuleProfile, error) {
	var p RuleProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return RuleProfile{}, fmt.Errorf("engine: decode profile: %w", err)
	}
	return p, nil
}

// Canonical rule bundles. These are fixture data, not behavior: every
// preset flows through the same evaluation paths as a hand-built profile.
var (
	// MaxRelax enables every concession the engine models.
	MaxRelax = RuleProfile{
		Draw:               1,
		Passes:             "unlimited",
		Supermove:          "relaxed",
		FoundationTakeback: true,
		PeekXray:           true,
		AutoplaySafeOnly:   false,
		UndoUnlimited:      true,
	}

	// FriendlyApp matches the defaults of casual mobile clients.
	FriendlyApp = RuleProfile{
		Draw:               1,
		Passes:             "unlimited",
		Supermove:          "standard",
		FoundationTakeback: true,
		PeekXray:           false,
		AutoplaySafeOnly:   false,
		UndoUnlimited:      true,
	}

	// Standard is classic draw-three Klondike with three passes.
	Standard = RuleProfile{
		Draw:               3,
		Passes:             "three",
		Supermove:          "standard",
		FoundationTakeback: false,
		PeekXray:           false,
		AutoplaySafeOnly:   true,
		UndoUnlimited:      false,
	}

	// XRay is Standard plus hidden-information reveals, used by analysis
	// tooling.
	XRay = RuleProfile{
		Draw:               3,
		Passes:             "three",
		Supermove:          "standard",
		FoundationTakeback: false,
		PeekXray:           true,
		AutoplaySafeOnly:   true,
		UndoUnlimited:      false,
	}
)

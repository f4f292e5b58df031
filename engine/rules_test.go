package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestPassLimitTokens(t *testing.T) {
	cases := []struct {
		passes    any
		limit     int
		unlimited bool
	}{
		{"unlimited", 0, true},
		{"infinite", 0, true},
		{"max_relax", 0, true},
		{"UNLIMITED", 0, true},
		{" three ", 3, false},
		{"triple", 3, false},
		{"one", 1, false},
		{"single", 1, false},
		{"none", 0, false},
		{"5", 5, false},
		{" 2 ", 2, false},
		{nil, 0, true},
		{0, 0, false},
		{4, 4, false},
		{int64(7), 7, false},
		{uint8(2), 2, false},
		{uint64(6), 6, false},
		{2.9, 2, false},
		{float32(1.0), 1, false},
	}
	for _, tc := range cases {
		p := Standard
		p.Passes = tc.passes
		limit, unlimited, err := p.PassLimit()
		if err != nil {
			t.Errorf("PassLimit(%v): unexpected error %v", tc.passes, err)
			continue
		}
		if limit != tc.limit || unlimited != tc.unlimited {
			t.Errorf("PassLimit(%v) = (%d, %v), want (%d, %v)", tc.passes, limit, unlimited, tc.limit, tc.unlimited)
		}
	}
}

func TestPassLimitRejections(t *testing.T) {
	valueCases := []any{
		-1, int64(-5), -0.5, math.NaN(), math.Inf(1), math.Inf(-1), "garbage", "-2",
		// unsigned values too large for int must not wrap around
		uint64(math.MaxUint64), uint64(math.MaxInt64) + 1,
	}
	for _, passes := range valueCases {
		p := Standard
		p.Passes = passes
		if _, _, err := p.PassLimit(); !errors.Is(err, ErrPassLimitValue) {
			t.Errorf("PassLimit(%v): got %v, want ErrPassLimitValue", passes, err)
		}
	}

	typeCases := []any{true, false, struct{}{}, []int{3}}
	for _, passes := range typeCases {
		p := Standard
		p.Passes = passes
		if _, _, err := p.PassLimit(); !errors.Is(err, ErrPassLimitType) {
			t.Errorf("PassLimit(%v): got %v, want ErrPassLimitType", passes, err)
		}
	}
}

// Normalizing an already-normalized value must be a no-op.
func TestPassLimitIdempotent(t *testing.T) {
	p := Standard
	limit, unlimited, err := p.PassLimit()
	if err != nil || unlimited {
		t.Fatalf("PassLimit(Standard) = (%d, %v, %v)", limit, unlimited, err)
	}
	p.Passes = limit
	again, unlimited, err := p.PassLimit()
	if err != nil || unlimited || again != limit {
		t.Errorf("re-normalized PassLimit = (%d, %v, %v), want (%d, false, nil)", again, unlimited, err, limit)
	}
}

func TestPassesRemaining(t *testing.T) {
	p := Standard // limit 3

	cases := []struct {
		state     any
		remaining int
	}{
		{map[string]any{"passes_made": 0}, 3},
		{map[string]any{"passes_made": 2}, 1},
		{map[string]any{"passes_made": 3}, 0},
		// remaining never goes negative
		{map[string]any{"passes_made": 99}, 0},
		{map[string]any{"stock_passes": 1}, 2},
		{map[string]any{"pass_count": 2}, 1},
		// bool, negative, and malformed counts coerce to 0
		{map[string]any{"passes_made": true}, 3},
		{map[string]any{"passes_made": -4}, 3},
		{map[string]any{"passes_made": "junk"}, 3},
		{map[string]any{}, 3},
		{nil, 3},
	}
	for _, tc := range cases {
		remaining, unlimited, err := p.PassesRemaining(tc.state)
		if err != nil {
			t.Errorf("PassesRemaining(%v): unexpected error %v", tc.state, err)
			continue
		}
		if unlimited {
			t.Errorf("PassesRemaining(%v): unexpectedly unlimited", tc.state)
			continue
		}
		if remaining != tc.remaining {
			t.Errorf("PassesRemaining(%v) = %d, want %d", tc.state, remaining, tc.remaining)
		}
	}
}

func TestPassesRemainingUnlimited(t *testing.T) {
	_, unlimited, err := MaxRelax.PassesRemaining(map[string]any{"passes_made": 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !unlimited {
		t.Error("expected unlimited passes for MaxRelax")
	}
}

func TestPassesRemainingSurfacesConfigError(t *testing.T) {
	p := Standard
	p.Passes = true
	if _, _, err := p.PassesRemaining(nil); !errors.Is(err, ErrPassLimitType) {
		t.Errorf("got %v, want ErrPassLimitType", err)
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	presets := map[string]RuleProfile{
		"max_relax":    MaxRelax,
		"friendly_app": FriendlyApp,
		"standard":     Standard,
		"xray":         XRay,
	}
	for name, preset := range presets {
		payload, err := preset.ToJSON()
		if err != nil {
			t.Fatalf("%s: ToJSON: %v", name, err)
		}
		decoded, err := FromJSON(payload)
		if err != nil {
			t.Fatalf("%s: FromJSON: %v", name, err)
		}
		if !reflect.DeepEqual(decoded, preset) {
			t.Errorf("%s: round trip mismatch: got %+v, want %+v", name, decoded, preset)
		}
	}
}

func TestFromJSONIgnoresUnknownFields(t *testing.T) {
	payload := []byte(`{"draw":3,"passes":"three","supermove":"standard",` +
		`"foundation_takeback":false,"peek_xray":false,` +
		`"autoplay_safe_only":true,"undo_unlimited":false,` +
		`"unknown_knob":42,"another":"x"}`)
	decoded, err := FromJSON(payload)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !reflect.DeepEqual(decoded, Standard) {
		t.Errorf("got %+v, want Standard preset", decoded)
	}
}

func TestFromJSONMalformed(t *testing.T) {
	if _, err := FromJSON([]byte(`{"draw":`)); err == nil {
		t.Error("expected error for truncated payload")
	}
}

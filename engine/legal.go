package engine

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FieldGetter is the capability interface for move and state inputs: a
// best-effort field lookup by name. Implement it to control exactly what
// the rules engine can see; plain maps and structs work without it.
type FieldGetter interface {
	GetField(name string) (value any, ok bool)
}

// lookupField retrieves name from obj. It tries, in order: the FieldGetter
// capability, a string-keyed map, then exported struct fields matched by
// json tag or case-insensitive field name. Missing fields report ok=false.
// Pointer values are dereferenced so optional struct fields behave like
// absent map keys when nil.
func lookupField(obj any, name string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	if g, ok := obj.(FieldGetter); ok {
		v, ok := g.GetField(name)
		return deref(v), ok
	}
	switch m := obj.(type) {
	case map[string]any:
		v, ok := m[name]
		return deref(v), ok
	case map[string]string:
		v, ok := m[name]
		return v, ok
	case map[string]int:
		v, ok := m[name]
		return v, ok
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag == name || strings.EqualFold(f.Name, name) ||
			strings.EqualFold(strings.ReplaceAll(f.Name, "_", ""), strings.ReplaceAll(name, "_", "")) {
			return deref(rv.Field(i).Interface()), true
		}
	}
	return nil, false
}

// deref unwraps pointer values, mapping nil pointers to nil.
func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// coerceCount converts a best-effort state field to a non-negative int.
// State snapshots are best-effort, so malformed, negative, or boolean
// values coerce to 0 instead of erroring.
func coerceCount(v any, ok bool) int {
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case bool:
		return 0
	case int:
		return clampNonNegative(int64(n))
	case int8:
		return clampNonNegative(int64(n))
	case int16:
		return clampNonNegative(int64(n))
	case int32:
		return clampNonNegative(int64(n))
	case int64:
		return clampNonNegative(n)
	case uint:
		return clampUint(uint64(n))
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return clampUint(n)
	case float32:
		return coerceFloatCount(float64(n))
	case float64:
		return coerceFloatCount(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return clampNonNegative(int64(parsed))
	default:
		return 0
	}
}

func clampNonNegative(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}

func clampUint(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

func coerceFloatCount(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Trunc(f))
}

// coerceNumber converts a move field to int64 when it carries an integral
// numeric value. Non-numeric values and fractional or non-finite floats
// report ok=false: 3.5 is not a draw of three.
func coerceNumber(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return integralFloat(float64(n))
	case float64:
		return integralFloat(n)
	default:
		return 0, false
	}
}

func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	return int64(f), true
}

// truthy reports whether a duck-typed value counts as true: true booleans,
// non-zero numbers, and non-empty strings.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float32:
		return t != 0
	case float64:
		return t != 0
	default:
		if n, ok := coerceNumber(v); ok {
			return n != 0
		}
		return false
	}
}

// stringField reads a move field as a string, tolerating missing values.
func stringField(obj any, name string) (string, bool) {
	v, ok := lookupField(obj, name)
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// passesMade reads the recorded stock-pass count from a state snapshot,
// accepting the synonyms the dataset tooling has historically emitted.
func passesMade(state any) int {
	for _, key := range []string{"passes_made", "stock_passes", "pass_count"} {
		if v, ok := lookupField(state, key); ok {
			return coerceCount(v, ok)
		}
	}
	return 0
}

// IsMoveLegal classifies a proposed move as legal or illegal under this
// profile. The move must expose a non-empty type or action discriminant
// (case-insensitive); otherwise ErrInvalidMove is returned. Action types
// the profile does not model are legal by default: the engine is
// deliberately permissive toward actions it cannot judge.
func (p RuleProfile) IsMoveLegal(state, move any) (bool, error) {
	action, ok := stringField(move, "type")
	if !ok {
		action, ok = stringField(move, "action")
	}
	if !ok {
		return false, ErrInvalidMove
	}
	action = strings.ToLower(action)

	// Draw-size mismatch is a global veto, checked before any
	// action-specific rule.
	requestedDraw, hasDraw := lookupField(move, "draw_count")
	if hasDraw && requestedDraw != nil {
		n, numeric := coerceNumber(requestedDraw)
		if !numeric || n != int64(p.Draw) {
			return false, nil
		}
	}

	switch action {
	case "draw":
		// The global veto above already rejected mismatches.
		return true, nil

	case "stock_pass":
		limit, unlimited, err := p.PassLimit()
		if err != nil {
			return false, err
		}
		if unlimited {
			return true, nil
		}
		return passesMade(state) < limit, nil

	case "supermove":
		mode, ok := stringField(move, "mode")
		if !ok {
			mode, ok = stringField(move, "strength")
		}
		if !ok {
			mode = "standard"
		}
		tier, known := supermoveStrength[strings.ToLower(mode)]
		if !known {
			tier = defaultSupermoveTier
		}
		allowed := supermoveStrength[strings.ToLower(p.Supermove)]
		return tier <= allowed, nil

	case "foundation_to_tableau":
		return p.FoundationTakeback, nil

	case "peek":
		return p.PeekXray, nil

	case "autoplay":
		if !p.AutoplaySafeOnly {
			return true, nil
		}
		v, _ := lookupField(move, "is_safe")
		return truthy(v), nil

	case "undo":
		if p.UndoUnlimited {
			return true, nil
		}
		if v, ok := lookupField(state, "undo_remaining"); ok && v != nil {
			return coerceCount(v, true) > 0, nil
		}
		// Default allowance is one free undo.
		used := coerceCount(lookupField(state, "undo_used"))
		return 1-used > 0, nil
	}

	// Unrecognized move types are legal by default. This is a deliberate
	// open policy, not a fallthrough omission.
	return true, nil
}

package tuning

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Var is a named value that can be changed at runtime.
type Var interface {
	Name() string
	// Value is the current value as stored in the tuning file.
	Value() any
	String() string
	set(value any) error
	// step nudges the value up for a positive dir and down otherwise.
	step(dir int)
}

type BoolVar struct {
	name  string
	value bool
}

func (v *BoolVar) Name() string   { return v.name }
func (v *BoolVar) Value() any     { return v.value }
func (v *BoolVar) Get() bool      { return v.value }
func (v *BoolVar) Set(value bool) { v.value = value }
func (v *BoolVar) Toggle()        { v.value = !v.value }
func (v *BoolVar) step(int)       { v.Toggle() }

func (v *BoolVar) String() string {
	if v.value {
		return "on"
	}
	return "off"
}

func (v *BoolVar) set(value any) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%s: expected a boolean, got %T", v.name, value)
	}
	v.value = b
	return nil
}

// NumberVar is a numeric value kept inside [Min, Max].
type NumberVar[T Number] struct {
	name  string
	value T
	Min   T
	Max   T
	Step  T
}

func (v *NumberVar[T]) Name() string { return v.name }
func (v *NumberVar[T]) Value() any   { return v.value }
func (v *NumberVar[T]) Get() T       { return v.value }

func (v *NumberVar[T]) Set(value T) {
	v.value = Clamp(value, v.Min, v.Max)
}

func (v *NumberVar[T]) Increment() { v.Set(v.value + v.Step) }
func (v *NumberVar[T]) Decrement() { v.Set(v.value - v.Step) }

func (v *NumberVar[T]) step(dir int) {
	if dir > 0 {
		v.Increment()
	} else {
		v.Decrement()
	}
}

func (v *NumberVar[T]) String() string {
	switch any(v.value).(type) {
	case float32, float64:
		return fmt.Sprintf("%.3f", any(v.value))
	default:
		return fmt.Sprintf("%d", any(v.value))
	}
}

func (v *NumberVar[T]) set(value any) error {
	switch n := value.(type) {
	case int64:
		v.Set(T(n))
	case float64:
		v.Set(T(n))
	case int:
		v.Set(T(n))
	default:
		return fmt.Errorf("%s: expected a number, got %T", v.name, value)
	}
	return nil
}

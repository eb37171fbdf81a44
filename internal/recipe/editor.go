package recipe

import (
	"errors"
	"fmt"
	"math"
)

// TargetTotal is the weight total a composition must reach before it can be
// saved or manufactured.
const TargetTotal = 100

var (
	// ErrOverTotal means the weights exceed 100.
	ErrOverTotal = errors.New("composition total exceeds 100")

	// ErrUnderTotal means the weights fall short of 100.
	ErrUnderTotal = errors.New("composition total is below 100")

	// ErrNoIngredients means the editor holds nothing to balance.
	ErrNoIngredients = errors.New("no ingredients")
)

// Ingredient is one editable weight entry.
type Ingredient struct {
	Name   string
	Weight int
}

// Editor adjusts per-ingredient weights within [0,100]. Save and
// manufacture actions are gated on an exact-100 total.
type Editor struct {
	ingredients []Ingredient
}

// NewEditor seeds an editor with an even split: floor(100/n) per
// ingredient, with the integer remainder assigned entirely to the last
// ingredient. This is the fallback distribution used when no fetched
// weights are available.
func NewEditor(names []string) *Editor {
	e := &Editor{ingredients: make([]Ingredient, len(names))}
	n := len(names)
	if n == 0 {
		return e
	}

	base := TargetTotal / n
	for i, name := range names {
		e.ingredients[i] = Ingredient{Name: name, Weight: base}
	}
	e.ingredients[n-1].Weight += TargetTotal - base*n
	return e
}

// NewEditorWithWeights seeds an editor from fetched weights, rounding each
// to the nearest integer and clamping into [0,100].
func NewEditorWithWeights(names []string, weights []float64) (*Editor, error) {
	if len(names) != len(weights) {
		return nil, fmt.Errorf("got %d names but %d weights", len(names), len(weights))
	}
	e := &Editor{ingredients: make([]Ingredient, len(names))}
	for i, name := range names {
		e.ingredients[i] = Ingredient{Name: name, Weight: clampWeight(weights[i])}
	}
	return e, nil
}

// FromComposition seeds an editor from a fetched recipe composition.
func FromComposition(composition []Composition) *Editor {
	names := make([]string, len(composition))
	weights := make([]float64, len(composition))
	for i, line := range composition {
		names[i] = line.NoteName
		weights[i] = line.Weight
	}
	e, _ := NewEditorWithWeights(names, weights)
	return e
}

func clampWeight(w float64) int {
	rounded := int(math.Round(w))
	if rounded < 0 {
		return 0
	}
	if rounded > TargetTotal {
		return TargetTotal
	}
	return rounded
}

// Len returns the ingredient count.
func (e *Editor) Len() int {
	return len(e.ingredients)
}

// Ingredients returns a copy of the current entries.
func (e *Editor) Ingredients() []Ingredient {
	return append([]Ingredient(nil), e.ingredients...)
}

// SetWeight sets one ingredient's weight, rounded to the nearest integer
// and clamped into [0,100].
func (e *Editor) SetWeight(index int, weight float64) error {
	if index < 0 || index >= len(e.ingredients) {
		return fmt.Errorf("ingredient index %d out of range", index)
	}
	e.ingredients[index].Weight = clampWeight(weight)
	return nil
}

// AutoBalance redistributes 100 evenly: floor(100/n) per ingredient with
// the integer remainder added entirely to the first ingredient.
func (e *Editor) AutoBalance() error {
	n := len(e.ingredients)
	if n == 0 {
		return ErrNoIngredients
	}

	base := TargetTotal / n
	for i := range e.ingredients {
		e.ingredients[i].Weight = base
	}
	e.ingredients[0].Weight += TargetTotal - base*n
	return nil
}

// Total returns the current weight sum.
func (e *Editor) Total() int {
	total := 0
	for _, ing := range e.ingredients {
		total += ing.Weight
	}
	return total
}

// Deviation returns how far the total is from 100; positive means over.
func (e *Editor) Deviation() int {
	return e.Total() - TargetTotal
}

// Validate reports whether the composition may be saved or manufactured.
// Over- and under-total are surfaced distinctly so the UI can say which way
// the composition is off.
func (e *Editor) Validate() error {
	switch d := e.Deviation(); {
	case d > 0:
		return fmt.Errorf("%w by %d", ErrOverTotal, d)
	case d < 0:
		return fmt.Errorf("%w by %d", ErrUnderTotal, -d)
	default:
		return nil
	}
}

// CanSave reports whether the total is exactly 100.
func (e *Editor) CanSave() bool {
	return e.Validate() == nil
}

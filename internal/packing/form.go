package packing

import (
	"context"
	"strconv"
	"strings"

	"github.com/idilsaglam/packlist/internal/model"
)

const defaultQuantity = "1"

// Form is the add-item input as typed by the user.
type Form struct {
	Description string
	Quantity    string
}

// NewForm returns a form in its reset state.
func NewForm() Form {
	return Form{Quantity: defaultQuantity}
}

// Reset clears the description and sets quantity back to 1.
func (f *Form) Reset() {
	*f = NewForm()
}

// ParseQuantity reads a quantity, clamping anything unparseable or below 1
// to 1.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Item builds the item the form describes. ok is false when the trimmed
// description is empty.
func (f Form) Item(gen model.IDGenerator) (model.Item, bool) {
	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		return model.Item{}, false
	}
	return model.Item{
		ID:          gen.Generate(),
		Description: desc,
		Quantity:    ParseQuantity(f.Quantity),
	}, true
}

// Submit adds the described item to l and resets the form. An empty
// description leaves both l and the form untouched and returns false.
func (f *Form) Submit(ctx context.Context, l *List, gen model.IDGenerator) bool {
	it, ok := f.Item(gen)
	if !ok {
		return false
	}
	l.Add(ctx, it)
	f.Reset()
	return true
}

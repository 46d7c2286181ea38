package domain

import "fmt"

// Category identifies an independent scheduling domain. Each category owns
// its own persisted spec and its own batch of pending notifications.
type Category string

const (
	CategoryWater      Category = "water"
	CategoryMedication Category = "medication"
	CategoryMealTime   Category = "meal_time"
)

// Categories lists every scheduling domain, in display order.
var Categories = []Category{CategoryWater, CategoryMedication, CategoryMealTime}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWater, CategoryMedication, CategoryMealTime:
		return Category(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

func (c Category) String() string {
	return string(c)
}

// UsesEntryList reports whether the category persists a list of independent
// entries rather than a single window spec.
func (c Category) UsesEntryList() bool {
	return c == CategoryMealTime || c == CategoryMedication
}

package models

import "slices"

// DefaultCategories is the category set offered by the form.
var DefaultCategories = []string{"الصحة", "التعلم", "الصحة العقلية"}

// IsKnownCategory reports whether c is one of categories.
func IsKnownCategory(categories []string, c string) bool {
	return slices.Contains(categories, c)
}

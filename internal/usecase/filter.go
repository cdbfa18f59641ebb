package usecase

import (
	"sort"

	"retail-dashboard/internal/domain"
)

// ApplyFilter returns the records satisfying every constraint in spec, in
// their original order. A reversed date or age range matches nothing.
func ApplyFilter(records []domain.Transaction, spec domain.FilterSpec) []domain.Transaction {
	categories := toSet(spec.Categories)
	genders := toSet(spec.Genders)

	filtered := make([]domain.Transaction, 0, len(records))
	for _, tx := range records {
		if spec.Dates != nil && !inDateRange(tx, *spec.Dates) {
			continue
		}
		if categories != nil && !categories[tx.Category] {
			continue
		}
		if genders != nil && !genders[tx.Gender] {
			continue
		}
		if spec.Ages != nil && (tx.Age < spec.Ages.Min || tx.Age > spec.Ages.Max) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}

// BuildFilterOptions collects the selectable values of each filter dimension.
// Categories and genders are sorted; dates and ages are zero for an empty snapshot.
func BuildFilterOptions(records []domain.Transaction) domain.FilterOptions {
	opts := domain.FilterOptions{
		Categories: make([]string, 0),
		Genders:    make([]string, 0),
	}
	seenCategory := make(map[string]bool)
	seenGender := make(map[string]bool)

	for i, tx := range records {
		if !seenCategory[tx.Category] {
			seenCategory[tx.Category] = true
			opts.Categories = append(opts.Categories, tx.Category)
		}
		if !seenGender[tx.Gender] {
			seenGender[tx.Gender] = true
			opts.Genders = append(opts.Genders, tx.Gender)
		}

		day := tx.Day()
		if i == 0 {
			opts.MinDate, opts.MaxDate = day, day
			opts.MinAge, opts.MaxAge = tx.Age, tx.Age
			continue
		}
		if day.Before(opts.MinDate) {
			opts.MinDate = day
		}
		if day.After(opts.MaxDate) {
			opts.MaxDate = day
		}
		if tx.Age < opts.MinAge {
			opts.MinAge = tx.Age
		}
		if tx.Age > opts.MaxAge {
			opts.MaxAge = tx.Age
		}
	}

	sort.Strings(opts.Categories)
	sort.Strings(opts.Genders)
	return opts
}

func inDateRange(tx domain.Transaction, r domain.DateRange) bool {
	day := tx.Day()
	start := domain.DateOnly(r.Start)
	end := domain.DateOnly(r.End)
	return !day.Before(start) && !day.After(end)
}

// toSet returns nil for an empty list so callers can treat it as "no restriction".
func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

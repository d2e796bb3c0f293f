package country

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// populationUnit scales the population parameter, which is given in millions.
const populationUnit = 1_000_000

// MaxPopulationMillions is the largest population limit that can be scaled without overflow.
const MaxPopulationMillions = math.MaxInt64 / populationUnit

var (
	// ErrInvalidParameter is returned for out-of-range query values.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidSortOrder is returned for an unknown sort token.
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

// SortOrder selects how the result is ordered by common name.
// The zero value leaves the order untouched.
type SortOrder int

const (
	SortUnset SortOrder = iota
	SortAscending
	SortDescending
)

// ParseSortOrder maps a query token to a SortOrder. Matching is case-insensitive;
// an empty token yields SortUnset.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortUnset, nil
	case "ascending", "asc":
		return SortAscending, nil
	case "descending", "desc":
		return SortDescending, nil
	default:
		return SortUnset, fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
}

func (o SortOrder) String() string {
	switch o {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	default:
		return "unset"
	}
}

// Query carries the optional transformations for one request.
// A nil pointer or empty Name means the stage is skipped.
type Query struct {
	Name               string
	PopulationMillions *int64
	Sort               SortOrder
	First              *int
}

// Validate rejects values the pipeline cannot honor.
func (q Query) Validate() error {
	if q.PopulationMillions != nil {
		p := *q.PopulationMillions
		if p < 0 {
			return fmt.Errorf("%w: population must not be negative", ErrInvalidParameter)
		}
		if p > MaxPopulationMillions {
			return fmt.Errorf("%w: population must not exceed %d", ErrInvalidParameter, int64(MaxPopulationMillions))
		}
	}
	if q.First != nil && *q.First < 0 {
		return fmt.Errorf("%w: first row count must not be negative", ErrInvalidParameter)
	}
	switch q.Sort {
	case SortUnset, SortAscending, SortDescending:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSortOrder, int(q.Sort))
	}
	return nil
}

// Apply runs name filter, population filter, sort and limit in that order.
// The input slice is never modified and the result is never nil.
func Apply(countries []Country, q Query) []Country {
	out := countries
	if q.Name != "" {
		out = FilterByName(out, q.Name)
	}
	if q.PopulationMillions != nil {
		out = FilterByPopulation(out, *q.PopulationMillions)
	}
	if q.Sort != SortUnset {
		out = Sort(out, q.Sort)
	}
	if q.First != nil {
		out = Limit(out, *q.First)
	}
	if out == nil {
		return []Country{}
	}
	return out
}

// FilterByName keeps countries whose common name contains name, ignoring case.
// Case is compared one rune at a time, so "ß" does not match "ss".
func FilterByName(countries []Country, name string) []Country {
	if name == "" {
		return countries
	}

	needle := strings.ToUpper(name)

	out := make([]Country, 0, len(countries))
	for _, c := range countries {
		if c.Name.Common == "" {
			continue
		}
		if strings.Contains(strings.ToUpper(c.Name.Common), needle) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByPopulation keeps countries with fewer than millions × 1,000,000 inhabitants.
// Callers validate that the limit is within [0, MaxPopulationMillions].
func FilterByPopulation(countries []Country, millions int64) []Country {
	threshold := millions * populationUnit

	out := make([]Country, 0, len(countries))
	for _, c := range countries {
		if c.Population < threshold {
			out = append(out, c)
		}
	}
	return out
}

// Sort returns a copy ordered by common name in alphabetical (collated) order,
// so accented names sit next to their base letters.
// The sort is stable in both directions: equal names keep their input order.
func Sort(countries []Country, order SortOrder) []Country {
	out := slices.Clone(countries)
	if order != SortAscending && order != SortDescending {
		return out
	}

	// A Collator keeps internal buffers and is not safe for concurrent use.
	col := collate.New(language.Und)

	switch order {
	case SortAscending:
		slices.SortStableFunc(out, func(a, b Country) int {
			return col.CompareString(a.Name.Common, b.Name.Common)
		})
	case SortDescending:
		slices.SortStableFunc(out, func(a, b Country) int {
			return col.CompareString(b.Name.Common, a.Name.Common)
		})
	}
	return out
}

// Limit returns at most the first n countries. A non-positive n yields an empty slice.
func Limit(countries []Country, n int) []Country {
	n = max(0, min(n, len(countries)))
	out := make([]Country, n)
	copy(out, countries[:n])
	return out
}

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/neexbeast/countries-api/internal/country"
)

// Query parameter names accepted by GET /api/v1/countries.
const (
	paramName       = "countryName"
	paramPopulation = "population"
	paramSort       = "sort"
	paramFirst      = "firstCountries"
)

// parseQuery builds a validated country.Query from the request parameters.
// Absent or empty parameters leave the matching stage disabled.
func parseQuery(values url.Values) (country.Query, error) {
	q := country.Query{Name: values.Get(paramName)}

	if raw := strings.TrimSpace(values.Get(paramPopulation)); raw != "" {
		p, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return country.Query{}, fmt.Errorf("%w: %s must be an integer", country.ErrInvalidParameter, paramPopulation)
		}
		q.PopulationMillions = &p
	}

	order, err := country.ParseSortOrder(values.Get(paramSort))
	if err != nil {
		return country.Query{}, fmt.Errorf("%w: %s must be ascending or descending", country.ErrInvalidSortOrder, paramSort)
	}
	q.Sort = order

	if raw := strings.TrimSpace(values.Get(paramFirst)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return country.Query{}, fmt.Errorf("%w: %s must be an integer", country.ErrInvalidParameter, paramFirst)
		}
		q.First = &n
	}

	if err := q.Validate(); err != nil {
		return country.Query{}, err
	}

	return q, nil
}

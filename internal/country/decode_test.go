package country_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/countries-api/internal/country"
)

const germanyJSON = `[{
	"cca2": "DE",
	"cca3": "DEU",
	"ccn3": "276",
	"cioc": "GER",
	"independent": true,
	"status": "officially-assigned",
	"unMember": true,
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"capital": ["Berlin"],
	"altSpellings": ["DE", "Federal Republic of Germany"],
	"region": "Europe",
	"subregion": "Western Europe",
	"languages": {"deu": "German"},
	"latlng": [51, 9],
	"area": 357114,
	"borders": ["AUT", "BEL"],
	"population": 83240525,
	"flags": {"png": "https://flagcdn.com/w320/de.png", "svg": "https://flagcdn.com/de.svg"},
	"name": {
		"common": "Germany",
		"official": "Federal Republic of Germany",
		"nativeName": {"deu": {"official": "Bundesrepublik Deutschland", "common": "Deutschland"}}
	},
	"demonyms": {"eng": {"f": "German", "m": "German"}, "fra": {"f": "Allemande", "m": "Allemand"}}
}]`

func TestDecode_FullRecord(t *testing.T) {
	got, err := country.Decode([]byte(germanyJSON))
	require.NoError(t, err)
	require.Len(t, got, 1)

	de := got[0]
	assert.Equal(t, "DE", de.Cca2)
	assert.Equal(t, "DEU", de.Cca3)
	assert.True(t, de.Independent)
	assert.True(t, de.UNMember)
	assert.Equal(t, "€", de.Currencies["EUR"].Symbol)
	assert.Equal(t, []string{"Berlin"}, de.Capital)
	assert.Equal(t, "German", de.Languages["deu"])
	assert.Equal(t, []float64{51, 9}, de.LatLng)
	assert.Equal(t, int64(83240525), de.Population)
	assert.Equal(t, "Germany", de.Name.Common)
	assert.Equal(t, "Deutschland", de.Name.NativeName["deu"].Common)
	assert.Equal(t, "Allemande", de.Demonyms["fra"].Feminine)
	assert.Equal(t, "https://flagcdn.com/de.svg", de.Flags.SVG)
}

func TestDecode_EmptyArray(t *testing.T) {
	got, err := country.Decode([]byte(`[]`))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecode_NoData(t *testing.T) {
	for _, body := range []string{"", "   \n", "null"} {
		_, err := country.Decode([]byte(body))
		assert.ErrorIs(t, err, country.ErrNoData, "body %q", body)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, body := range []string{`[{"name": "Germany"`, `{"status": 404}`, `[{"population": "many"}]`} {
		_, err := country.Decode([]byte(body))
		require.Error(t, err)
		assert.ErrorIs(t, err, country.ErrMalformed, "body %q", body)
	}
}

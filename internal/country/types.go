package country

// Currency describes a single currency used by a country.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// NativeName is a country name in one of its native languages.
type NativeName struct {
	Official string `json:"official"`
	Common   string `json:"common"`
}

// Name holds the common and official names plus native spellings keyed by language code.
type Name struct {
	Common     string                `json:"common"`
	Official   string                `json:"official"`
	NativeName map[string]NativeName `json:"nativeName"`
}

// Demonym is a feminine/masculine pair for one language.
type Demonym struct {
	Feminine  string `json:"f"`
	Masculine string `json:"m"`
}

// Flags holds flag image URIs.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// Country is one record of the upstream dataset. It is treated as a read-only
// snapshot for the lifetime of a request.
type Country struct {
	Cca2         string              `json:"cca2"`
	Cca3         string              `json:"cca3"`
	Ccn3         string              `json:"ccn3"`
	Cioc         string              `json:"cioc"`
	Independent  bool                `json:"independent"`
	Status       string              `json:"status"`
	UNMember     bool                `json:"unMember"`
	Currencies   map[string]Currency `json:"currencies"`
	Capital      []string            `json:"capital"`
	AltSpellings []string            `json:"altSpellings"`
	Region       string              `json:"region"`
	Subregion    string              `json:"subregion"`
	Languages    map[string]string   `json:"languages"`
	LatLng       []float64           `json:"latlng"`
	Area         float64             `json:"area"`
	Borders      []string            `json:"borders"`
	Population   int64               `json:"population"`
	Flags        Flags               `json:"flags"`
	Name         Name                `json:"name"`
	Demonyms     map[string]Demonym  `json:"demonyms"`
}

package wallbase

import (
	"strconv"
	"strings"
)

// SearchType selects the gallery search mode.
type SearchType string

// Search modes understood by the gallery.
const (
	SearchDefault SearchType = ""
	SearchText    SearchType = "text"
	SearchColor   SearchType = "color"
)

// Parameter keys recognized in a location string.
const (
	ParamType      = "type"
	ParamQuery     = "query"
	ParamColor     = "color"
	ParamBoard     = "board"
	ParamNSFW      = "nsfw"
	ParamOrder     = "order"
	ParamFavsCount = "favs_count"
)

// OrderFavs is the value of the order parameter that enables
// favorites-preference mode.
const OrderFavs = "favs"

// Params holds the key/value pairs parsed from a location string.
// Keys are lower-cased; values are kept verbatim.
type Params map[string]string

// ParseLocation parses a location of the form "key1:value1;key2:value2".
// Segments without a colon after the first character are ignored.
// When a key repeats, the last occurrence wins.
func ParseLocation(location string) Params {
	params := make(Params)
	for _, segment := range strings.Split(location, ";") {
		if strings.Index(segment, ":") <= 0 {
			continue
		}
		key, value, _ := strings.Cut(segment, ":")
		params[strings.ToLower(key)] = value
	}
	return params
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (string, bool) {
	v, ok := p[strings.ToLower(key)]
	return v, ok
}

// SearchType returns the search mode. Unknown values behave like SearchDefault.
func (p Params) SearchType() SearchType {
	switch t := SearchType(p[ParamType]); t {
	case SearchText, SearchColor:
		return t
	default:
		return SearchDefault
	}
}

// PreferFavs reports whether favorites-preference mode is enabled.
func (p Params) PreferFavs() bool {
	return p[ParamOrder] == OrderFavs
}

// FavsCount returns the favs_count parameter.
// Returns EINVALID if it is missing or not a positive integer.
func (p Params) FavsCount() (int, error) {
	v, ok := p[ParamFavsCount]
	if !ok {
		return 0, Errorf(EINVALID, "favs_count is required when order is %q", OrderFavs)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, Errorf(EINVALID, "favs_count must be a positive integer, got %q", v)
	}
	return n, nil
}

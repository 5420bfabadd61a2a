package config

import (
	"strings"
)

// CitySource maps a city key to its trip source file.
type CitySource struct {
	Key  string `yaml:"key" validate:"required,lowercase"`
	Name string `yaml:"name" validate:"required"`
	File string `yaml:"file" validate:"required"`
}

// DefaultCities returns the built-in city catalogue.
// A fresh slice is returned on every call so callers cannot alter the defaults.
func DefaultCities() []CitySource {
	return []CitySource{
		{Key: "chicago", Name: "Chicago", File: "chicago.csv"},
		{Key: "nyc", Name: "New York City", File: "new_york_city.csv"},
		{Key: "washington", Name: "Washington", File: "washington.csv"},
	}
}

// Catalog is an immutable lookup over configured cities.
type Catalog struct {
	cities []CitySource
}

// NewCatalog copies the given sources into a catalogue.
func NewCatalog(cities []CitySource) Catalog {
	return Catalog{cities: append([]CitySource(nil), cities...)}
}

// Cities returns the configured cities in declaration order.
func (c Catalog) Cities() []CitySource {
	return append([]CitySource(nil), c.cities...)
}

// Lookup finds a city by key or display name, ignoring case and surrounding spaces.
func (c Catalog) Lookup(answer string) (CitySource, bool) {
	answer = strings.TrimSpace(answer)
	for _, city := range c.cities {
		if strings.EqualFold(city.Key, answer) || strings.EqualFold(city.Name, answer) {
			return city, true
		}
	}
	return CitySource{}, false
}

// Names lists display names, used to build the city prompt.
func (c Catalog) Names() []string {
	names := make([]string, len(c.cities))
	for i, city := range c.cities {
		names[i] = city.Name
	}
	return names
}

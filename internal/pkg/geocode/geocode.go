package geocode

import (
	"strings"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

// Geocoder resolves a free-text city name to coordinates. A miss is not an
// error: the caller leaves the record ungeocoded and the matching engine
// treats it as co-located.
type Geocoder interface {
	Lookup(city string) (*models.Coordinates, bool)
}

// StaticGeocoder resolves against a fixed city table. Intake data is
// uncontrolled free text, so lookups are case-insensitive and whitespace
// tolerant.
type StaticGeocoder struct {
	cities map[string]models.Coordinates
}

// NewStaticGeocoder creates a geocoder preloaded with the cities the program
// currently operates in
func NewStaticGeocoder() *StaticGeocoder {
	return &StaticGeocoder{
		cities: map[string]models.Coordinates{
			"jerusalem":     {Latitude: 31.7683, Longitude: 35.2137},
			"tel aviv":      {Latitude: 32.0853, Longitude: 34.7818},
			"haifa":         {Latitude: 32.7940, Longitude: 34.9896},
			"rishon lezion": {Latitude: 31.9730, Longitude: 34.7925},
			"petah tikva":   {Latitude: 32.0871, Longitude: 34.8878},
			"ashdod":        {Latitude: 31.8044, Longitude: 34.6553},
			"netanya":       {Latitude: 32.3215, Longitude: 34.8532},
			"beer sheva":    {Latitude: 31.2518, Longitude: 34.7913},
			"holon":         {Latitude: 32.0167, Longitude: 34.7792},
			"bnei brak":     {Latitude: 32.0807, Longitude: 34.8338},
			"ramat gan":     {Latitude: 32.0700, Longitude: 34.8235},
			"bat yam":       {Latitude: 32.0231, Longitude: 34.7503},
			"rehovot":       {Latitude: 31.8928, Longitude: 34.8113},
			"ashkelon":      {Latitude: 31.6688, Longitude: 34.5743},
			"herzliya":      {Latitude: 32.1624, Longitude: 34.8447},
			"kfar saba":     {Latitude: 32.1750, Longitude: 34.9070},
			"hadera":        {Latitude: 32.4340, Longitude: 34.9196},
			"modiin":        {Latitude: 31.8928, Longitude: 35.0124},
			"nazareth":      {Latitude: 32.6996, Longitude: 35.3035},
			"raanana":       {Latitude: 32.1848, Longitude: 34.8713},
			"akko":          {Latitude: 32.9281, Longitude: 35.0820},
			"eilat":         {Latitude: 29.5577, Longitude: 34.9519},
			"tiberias":      {Latitude: 32.7922, Longitude: 35.5312},
			"karmiel":       {Latitude: 32.9136, Longitude: 35.2961},
			"nahariya":      {Latitude: 33.0036, Longitude: 35.0925},
		},
	}
}

// Lookup resolves a city name
func (g *StaticGeocoder) Lookup(city string) (*models.Coordinates, bool) {
	normalized := strings.ToLower(strings.TrimSpace(city))
	if normalized == "" {
		return nil, false
	}

	coords, ok := g.cities[normalized]
	if !ok {
		return nil, false
	}
	return &models.Coordinates{Latitude: coords.Latitude, Longitude: coords.Longitude}, true
}

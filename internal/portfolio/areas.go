package portfolio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Area is one entry of the service-area registry: a named coverage region
// with the color token the map and the stats panel share.
type Area struct {
	Name  string `json:"name" yaml:"name" doc:"Service area name" example:"Gainesville"`
	Color string `json:"color" yaml:"color" doc:"CSS color token shared by map and stats panel" example:"#246e96"`
}

// DefaultAreas is the reference deployment's five service areas, in display
// order, used when no areas.yaml is present in the data directory.
var DefaultAreas = []Area{
	{Name: "Gainesville", Color: "#246e96"},
	{Name: "Braselton", Color: "#77bc1f"},
	{Name: "Barrow", Color: "#e8a33d"},
	{Name: "Habersham", Color: "#8e44ad"},
	{Name: "Lumpkin", Color: "#c0392b"},
}

// LoadAreas reads the service-area registry from a YAML file of the form:
//
//	areas:
//	  - name: Gainesville
//	    color: "#246e96"
//
// A missing file falls back to DefaultAreas; a malformed one is an error.
func LoadAreas(path string) ([]Area, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]Area(nil), DefaultAreas...), nil
		}
		return nil, fmt.Errorf("reading area registry %s: %w", path, err)
	}

	var doc struct {
		Areas []Area `yaml:"areas"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing area registry %s: %w", path, err)
	}
	if len(doc.Areas) == 0 {
		return nil, fmt.Errorf("area registry %s lists no areas", path)
	}
	return doc.Areas, nil
}

// AreaNames extracts the names from a registry, preserving order.
func AreaNames(areas []Area) []string {
	names := make([]string, len(areas))
	for i, a := range areas {
		names[i] = a.Name
	}
	return names
}

// AreaColors builds a name-to-color lookup for the presentation layer.
func AreaColors(areas []Area) map[string]string {
	colors := make(map[string]string, len(areas))
	for _, a := range areas {
		colors[a.Name] = a.Color
	}
	return colors
}

package pokeapi

import (
	"encoding/json"
	"strings"
)

// NamedResource is the minimal reference returned by list endpoints.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Page mirrors the paginated list payload of /pokemon.
type Page struct {
	Count    int             `json:"count"`
	Next     string          `json:"next"`
	Previous string          `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// Pokemon is the full detail record for one catalog entry. Only the fields the
// application renders are typed; the verbatim body is kept in Raw.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	BaseExperience int           `json:"base_experience"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	Order          int           `json:"order"`
	IsDefault      bool          `json:"is_default"`
	Sprites        Sprites       `json:"sprites"`
	Types          []TypeSlot    `json:"types"`
	Abilities      []AbilitySlot `json:"abilities"`
	Stats          []StatSlot    `json:"stats"`

	Raw json.RawMessage `json:"-"`
}

// Sprites holds the sprite URLs of an entry. Missing sprites decode to "".
type Sprites struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
	BackDefault  string `json:"back_default"`
	BackShiny    string `json:"back_shiny"`
}

// TypeSlot is one elemental type of an entry.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilitySlot is one ability of an entry.
type AbilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

// StatSlot is one base stat of an entry.
type StatSlot struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// UnmarshalJSON decodes the typed fields and retains the raw body.
func (p *Pokemon) UnmarshalJSON(data []byte) error {
	type alias Pokemon
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Pokemon(decoded)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON passes the original body through when one was decoded.
func (p Pokemon) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type alias Pokemon
	return json.Marshal(alias(p))
}

// Valid reports whether the record carries the fields the UI needs. The zero
// value returned on fetch failure is never valid.
func (p Pokemon) Valid() bool {
	return p.ID > 0 && strings.TrimSpace(p.Name) != ""
}

// TypeNames returns the elemental type names in slot order.
func (p Pokemon) TypeNames() []string {
	if len(p.Types) == 0 {
		return nil
	}
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		if name := strings.TrimSpace(t.Type.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// AbilityNames returns ability names, hidden abilities suffixed with "(hidden)".
func (p Pokemon) AbilityNames() []string {
	names := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		name := a.Ability.Name
		if a.IsHidden {
			name += " (hidden)"
		}
		names = append(names, name)
	}
	return names
}

// Stat returns the base value of the named stat, or 0 if absent.
func (p Pokemon) Stat(name string) int {
	for _, s := range p.Stats {
		if strings.EqualFold(s.Stat.Name, name) {
			return s.BaseStat
		}
	}
	return 0
}

// HeightMeters converts the API's decimetres to metres.
func (p Pokemon) HeightMeters() float64 {
	return float64(p.Height) / 10
}

// WeightKilograms converts the API's hectograms to kilograms.
func (p Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

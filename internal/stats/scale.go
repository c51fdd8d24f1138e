package stats

import "strings"

// Rule maps every label containing Match (case-insensitive) to Value.
type Rule struct {
	Match string  `toml:"match"`
	Value float64 `toml:"value"`
}

// Mapping turns an enumerated label into a number. Rules are tried in
// order; labels matching none get Default.
type Mapping struct {
	Rules   []Rule  `toml:"rules"`
	Default float64 `toml:"default"`
}

// Value maps label through the rules.
func (m Mapping) Value(label string) float64 {
	lower := strings.ToLower(label)
	for _, r := range m.Rules {
		if r.Match != "" && strings.Contains(lower, strings.ToLower(r.Match)) {
			return r.Value
		}
	}
	return m.Default
}

// Scale holds the label-to-number tables. The summary tables feed the
// dashboard averages; the chart tables feed the 7-day series and the mood
// trend.
type Scale struct {
	Mood        Mapping `toml:"mood"`
	Energy      Mapping `toml:"energy"`
	ChartMood   Mapping `toml:"chart_mood"`
	ChartEnergy Mapping `toml:"chart_energy"`
}

// DefaultScale returns the built-in tables.
func DefaultScale() Scale {
	return Scale{
		Mood: Mapping{
			Rules: []Rule{
				{"Happy", 5}, {"Excited", 5},
				{"Calm", 4},
				{"Tired", 2},
				{"Sad", 1}, {"Angry", 1}, {"Anxious", 1},
			},
			Default: 3,
		},
		Energy: Mapping{
			Rules:   []Rule{{"High", 8.5}, {"Medium", 5}, {"Low", 2}},
			Default: 0,
		},
		ChartMood: Mapping{
			Rules: []Rule{
				{"Happy", 8}, {"Excited", 8},
				{"Calm", 6},
				{"Tired", 4},
				{"Sad", 2}, {"Angry", 2}, {"Anxious", 2},
			},
			Default: 5,
		},
		ChartEnergy: Mapping{
			Rules:   []Rule{{"High", 8.5}, {"Medium", 5}, {"Low", 2.5}},
			Default: 0,
		},
	}
}

// WithDefaults fills any table left empty with the built-in one, so a
// config file may override a single table.
func (s Scale) WithDefaults() Scale {
	d := DefaultScale()
	if len(s.Mood.Rules) == 0 {
		s.Mood = d.Mood
	}
	if len(s.Energy.Rules) == 0 {
		s.Energy = d.Energy
	}
	if len(s.ChartMood.Rules) == 0 {
		s.ChartMood = d.ChartMood
	}
	if len(s.ChartEnergy.Rules) == 0 {
		s.ChartEnergy = d.ChartEnergy
	}
	return s
}

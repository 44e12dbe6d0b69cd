package sim

// Stats are a critter template's fixed personality numbers, all in [0,1].
type Stats struct {
	Speed       float64 `yaml:"speed"`
	Playfulness float64 `yaml:"playfulness"`
	Obedience   float64 `yaml:"obedience"`
	Energy      float64 `yaml:"energy"`
}

// Template describes one loadable critter.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Species     string `yaml:"species"`
	UnlockLevel int    `yaml:"unlock_level"`
	Stats       Stats  `yaml:"stats"`
}

// BuiltinTemplates returns the stock critters used when no config provides
// any.
func BuiltinTemplates() []Template {
	return []Template{
		{
			ID:          "chirpy",
			Name:        "Chirpy",
			Species:     "bird",
			UnlockLevel: 1,
			Stats:       Stats{Speed: 0.9, Playfulness: 0.8, Obedience: 0.4, Energy: 0.7},
		},
		{
			ID:          "bouncy",
			Name:        "Bouncy",
			Species:     "bunny",
			UnlockLevel: 2,
			Stats:       Stats{Speed: 0.7, Playfulness: 0.9, Obedience: 0.6, Energy: 0.9},
		},
	}
}

// Critter is a loaded template plus its mutable session state.
type Critter struct {
	Template  Template
	Energy    float64
	Happiness float64
}

func newCritter(t Template) *Critter {
	return &Critter{Template: t, Energy: t.Stats.Energy, Happiness: 0.5}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

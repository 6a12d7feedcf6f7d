package config

// EntitiesConfig is the root config for entities.yaml
type EntitiesConfig struct {
	Player    PlayerConfig              `yaml:"player"`
	Templates map[string]TemplateConfig `yaml:"templates"`
}

// PlayerConfig tunes the controllable entity
type PlayerConfig struct {
	Sprite    string  `yaml:"sprite"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`     // px/s
	JumpSpeed float64 `yaml:"jumpSpeed"` // px/s, eased back to zero
	JumpMs    int64   `yaml:"jumpMs"`
	Gravity   float64 `yaml:"gravity"` // px/s
	Curve     string  `yaml:"curve"`   // easing for the jump, see curve.ByName
	JumpSound string  `yaml:"jumpSound"`
}

// TemplateConfig describes a static entity type built by name
type TemplateConfig struct {
	Sprite string  `yaml:"sprite"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Solid  string  `yaml:"solid"`  // resolver name, empty = not solid
	Pickup bool    `yaml:"pickup"` // removed when the player touches it
	Sound  string  `yaml:"sound"`  // played on pickup
}

package profile

// Document is the YAML shape of profile.yaml.
type Document struct {
	Tagline  string         `yaml:"tagline"`
	Bio      []string       `yaml:"bio"`
	Artworks []ArtworkProps `yaml:"artworks"`
	Tech     []string       `yaml:"tech"`
	Social   []SocialProps  `yaml:"social"`
}

type ArtworkProps struct {
	Title       string `yaml:"title"`
	Image       string `yaml:"image"`
	Description string `yaml:"description,omitempty"`
}

type SocialProps struct {
	Label   string `yaml:"label"`
	Href    string `yaml:"href"`
	Icon    string `yaml:"icon,omitempty"`
	SameTab bool   `yaml:"same_tab,omitempty"`
}

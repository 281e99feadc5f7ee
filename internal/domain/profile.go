package domain

// Profile holds the static sections of the About page.
//
// None of its values depend on the fetched Publication.
type Profile struct {
	Tagline     string
	Bio         []string
	Artworks    []Artwork
	TechStack   []string
	SocialLinks []SocialLink
}

// Artwork is one gallery item.
type Artwork struct {
	Title       string
	Image       string // site-relative path, ex: /assets/boy.jpg
	Description string
}

// SocialLink is one "Let's Connect" entry.
type SocialLink struct {
	Label string
	Href  string

	// Icon names the glyph drawn next to the label. Empty means text only.
	Icon string

	// NewTab opens the link in a new browsing context (target=_blank).
	NewTab bool
}

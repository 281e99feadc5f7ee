package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
)

// Mapper converts a profile Document into domain.Profile.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapProfile validates doc and converts it. Order is preserved everywhere.
func (m *Mapper) MapProfile(doc Document) (domain.Profile, error) {
	var errs []error

	if len(doc.Artworks) == 0 {
		errs = append(errs, errors.New("no artworks defined"))
	}
	if len(doc.Tech) == 0 {
		errs = append(errs, errors.New("no tech labels defined"))
	}
	if len(doc.Social) == 0 {
		errs = append(errs, errors.New("no social links defined"))
	}

	artworks := make([]domain.Artwork, 0, len(doc.Artworks))
	for i, a := range doc.Artworks {
		if a.Title == "" || a.Image == "" {
			errs = append(errs, fmt.Errorf("artwork %d: title and image are required", i))
			continue
		}
		artworks = append(artworks, domain.Artwork{
			Title:       a.Title,
			Image:       a.Image,
			Description: a.Description,
		})
	}

	tech := make([]string, 0, len(doc.Tech))
	for i, label := range doc.Tech {
		label = strings.TrimSpace(label)
		if label == "" {
			errs = append(errs, fmt.Errorf("tech label %d is empty", i))
			continue
		}
		tech = append(tech, label)
	}

	links := make([]domain.SocialLink, 0, len(doc.Social))
	for i, s := range doc.Social {
		if s.Label == "" || s.Href == "" {
			errs = append(errs, fmt.Errorf("social link %d: label and href are required", i))
			continue
		}
		links = append(links, domain.SocialLink{
			Label: s.Label,
			Href:  s.Href,
			Icon:  s.Icon,
			// mailto links stay in the current tab
			NewTab: !s.SameTab,
		})
	}

	if len(errs) > 0 {
		return domain.Profile{}, fmt.Errorf("invalid profile: %w", errors.Join(errs...))
	}

	bio := make([]string, 0, len(doc.Bio))
	for _, p := range doc.Bio {
		if p = strings.TrimSpace(p); p != "" {
			bio = append(bio, p)
		}
	}

	return domain.Profile{
		Tagline:     strings.TrimSpace(doc.Tagline),
		Bio:         bio,
		Artworks:    artworks,
		TechStack:   tech,
		SocialLinks: links,
	}, nil
}

// Default loads and maps the embedded profile.
func Default() (domain.Profile, error) {
	doc, err := NewEmbeddedLoader().Load()
	if err != nil {
		return domain.Profile{}, err
	}
	return NewMapper().MapProfile(doc)
}

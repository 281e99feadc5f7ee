package hashnode

import (
	"strings"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
)

// mapPublication converts a response node. A nil node maps to nil.
func mapPublication(n *publicationNode) *domain.Publication {
	if n == nil {
		return nil
	}

	var picture string
	if n.Author.ProfilePicture != nil {
		picture = strings.TrimSpace(*n.Author.ProfilePicture)
	}

	return &domain.Publication{
		ID:    n.ID,
		Title: n.Title,
		URL:   n.URL,
		Author: domain.Author{
			Name:           n.Author.Name,
			ProfilePicture: picture,
		},
	}
}

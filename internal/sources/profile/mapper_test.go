package profile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
)

func TestDefaultProfile(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if p.Tagline != "Software Developer & Educator & Artist" {
		t.Errorf("Tagline = %q", p.Tagline)
	}

	wantArtworks := []domain.Artwork{
		{Title: "Drawing #1", Image: "/assets/boy.jpg", Description: "Detailed pen drawing of a boy, exploring light and shadow"},
		{Title: "Drawing #2", Image: "/assets/hand.jpg", Description: "Detailed pen drawing of a hand, exploring light and shadow"},
	}
	if diff := cmp.Diff(wantArtworks, p.Artworks); diff != "" {
		t.Errorf("Artworks mismatch (-want +got):\n%s", diff)
	}

	wantTech := []string{"JavaScript", "TypeScript", "React", "Node.js", "Next.js", "GraphQL", "Java", "Python", "AWS"}
	if diff := cmp.Diff(wantTech, p.TechStack); diff != "" {
		t.Errorf("TechStack mismatch (-want +got):\n%s", diff)
	}

	wantLinks := []domain.SocialLink{
		{Label: "Twitter", Href: "https://x.com/ias_code", Icon: "twitter", NewTab: true},
		{Label: "GitHub", Href: "https://github.com/oliviasmim", Icon: "github", NewTab: true},
		{Label: "Instagram", Href: "https://instagram.com/ias.code", Icon: "instagram", NewTab: true},
		{Label: "LinkedIn", Href: "https://www.linkedin.com/in/oliveiasmim/", Icon: "linkedin", NewTab: true},
		{Label: "Daily.dev", Href: "https://app.daily.dev/iascode", NewTab: true},
		{Label: "Email", Href: "mailto:iasmim@creativedev.art", Icon: "envelope", NewTab: false},
	}
	if diff := cmp.Diff(wantLinks, p.SocialLinks); diff != "" {
		t.Errorf("SocialLinks mismatch (-want +got):\n%s", diff)
	}

	if len(p.Bio) != 4 {
		t.Fatalf("Bio has %d paragraphs, want 4", len(p.Bio))
	}
	if !strings.HasPrefix(p.Bio[0], "Welcome to The Creative Developer!") {
		t.Errorf("Bio[0] = %q", p.Bio[0])
	}
	if strings.Contains(p.Bio[1], "\n") {
		t.Errorf("Bio[1] should be folded onto one line, got %q", p.Bio[1])
	}
}

func TestMapperMapProfileErrors(t *testing.T) {
	valid := Document{
		Artworks: []ArtworkProps{{Title: "a", Image: "/a.jpg"}},
		Tech:     []string{"Go"},
		Social:   []SocialProps{{Label: "GitHub", Href: "https://github.com"}},
	}

	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr string
	}{
		{name: "valid", mutate: func(d *Document) {}},
		{name: "no artworks", mutate: func(d *Document) { d.Artworks = nil }, wantErr: "no artworks"},
		{name: "artwork missing image", mutate: func(d *Document) { d.Artworks[0].Image = "" }, wantErr: "artwork 0"},
		{name: "blank tech label", mutate: func(d *Document) { d.Tech = []string{" "} }, wantErr: "tech label 0"},
		{name: "social missing href", mutate: func(d *Document) { d.Social[0].Href = "" }, wantErr: "social link 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid
			doc.Artworks = append([]ArtworkProps(nil), valid.Artworks...)
			doc.Tech = append([]string(nil), valid.Tech...)
			doc.Social = append([]SocialProps(nil), valid.Social...)
			tt.mutate(&doc)

			_, err := NewMapper().MapProfile(doc)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("MapProfile() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("MapProfile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

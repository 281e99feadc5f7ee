package render

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
)

//go:embed templates/*.html
var templates embed.FS

// TitleSuffix is appended to the publication title to form the page title.
const TitleSuffix = " - About Me"

// Renderer binds a publication and the static profile into the About page.
type Renderer struct {
	tmpl *template.Template
}

type aboutView struct {
	Title          string
	ProfilePicture string
	Publication    domain.Publication
	Profile        domain.Profile
}

// New parses the embedded page template.
func New() (*Renderer, error) {
	tmpl, err := template.New("about.html").Option("missingkey=error").ParseFS(templates, "templates/about.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// PageTitle returns the document title for a publication.
func PageTitle(pub domain.Publication) string {
	return pub.Title + TitleSuffix
}

// Render produces the page. The output depends only on pub and profile.
func (r *Renderer) Render(pub domain.Publication, profile domain.Profile) (domain.Page, error) {
	view := aboutView{
		Title:          PageTitle(pub),
		ProfilePicture: pub.Author.ProfilePicture,
		Publication:    pub,
		Profile:        profile,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return domain.Page{}, fmt.Errorf("failed to render page: %w", err)
	}

	html := buf.Bytes()
	return domain.Page{
		Title: view.Title,
		HTML:  html,
		ETag:  etag(html),
	}, nil
}

func etag(content []byte) string {
	sum := sha256.Sum256(content)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

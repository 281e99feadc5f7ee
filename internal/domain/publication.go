package domain

// Publication is the content platform's aggregate record for a blog.
//
// Only the fields the About page binds are carried. It is read-only and
// fetched fresh on every regeneration.
type Publication struct {
	// ID is the platform identifier of the publication.
	ID string `json:"id,omitempty"`

	// Title is the blog title. It prefixes the page title.
	Title string `json:"title"`

	// URL is the canonical blog URL, when the platform returns one.
	URL string `json:"url,omitempty"`

	// Author is the publication owner.
	Author Author `json:"author"`
}

// Author is the owner of a publication.
type Author struct {
	Name string `json:"name"`

	// ProfilePicture is an absolute image URL. Empty when the author has none.
	ProfilePicture string `json:"profilePicture,omitempty"`
}

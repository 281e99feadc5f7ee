package hashnode

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PublicationByHostQuery fetches the fields the About page binds.
const PublicationByHostQuery = `query PublicationByHost($host: String!) {
  publication(host: $host) {
    id
    title
    url
    author {
      name
      profilePicture
    }
  }
}`

type publicationNode struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	URL    string     `json:"url"`
	Author authorNode `json:"author"`
}

type authorNode struct {
	Name           string  `json:"name"`
	ProfilePicture *string `json:"profilePicture"`
}

// decodePublication reads the data member of a PublicationByHost response.
// Only an explicit `"publication": null` means the platform has none; an
// absent or null data member, or a missing publication key, is malformed.
func decodePublication(data json.RawMessage) (*publicationNode, error) {
	if isNull(data) {
		return nil, fmt.Errorf("%w: no data in response", ErrMalformedResponse)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	raw, ok := envelope["publication"]
	if !ok {
		return nil, fmt.Errorf("%w: publication field missing", ErrMalformedResponse)
	}
	if isNull(raw) {
		return nil, nil
	}

	var node publicationNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &node, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

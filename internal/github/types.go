package github

// treeResponse is the payload of the git trees endpoint.
type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// TreeEntry is one node of a recursive repository tree listing.
// Type is "blob" for regular files and "tree" for directories.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int    `json:"size,omitempty"`
}

// IsFile reports whether the entry is a regular file.
func (e TreeEntry) IsFile() bool {
	return e.Type == "blob"
}

// contentsResponse is the payload of the repository contents endpoint.
type contentsResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

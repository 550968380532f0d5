package models

type Package struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
}

// PackageInput is the body of a package creation request. The author comes from the token.
type PackageInput struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

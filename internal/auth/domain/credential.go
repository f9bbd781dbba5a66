package domain

// Credential is a submitted identifier/secret pair. It only lives for the
// duration of a login request and is never logged.
type Credential struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// Identity is what a successful authentication produces.
type Identity struct {
	UserID string
	Roles  []string
}

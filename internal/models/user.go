package models

// CredentialRecord is the stored credential of one registered identity.
// Records are written once at signup and never mutated.
type CredentialRecord struct {
	Username string `json:"username"`
	Salt     string `json:"salt"`     // base64 (raw std) encoded random salt
	Password string `json:"password"` // PHC encoded argon2id hash, embeds parameters and salt
}

package registry

// =============================================================================
// Credentials
// =============================================================================

// CredentialSource identifies which resolution tier produced a set of
// registry credentials.
type CredentialSource string

const (
	// SourceExplicit means the operator passed username and password on the
	// command line.
	SourceExplicit CredentialSource = "explicit"

	// SourceLookup means the credentials were fetched from the managed
	// registry's admin credential API.
	SourceLookup CredentialSource = "lookup"

	// SourcePrompt means the operator typed the credentials interactively.
	SourcePrompt CredentialSource = "prompt"
)

// Credentials holds everything needed to pull the image from its registry.
// Resolved once per run and reused for both web app instances; never
// persisted.
type Credentials struct {
	Reference

	Username string
	Password string

	// Source records the tier that produced these credentials.
	Source CredentialSource
}

// Complete reports whether both username and password are present.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

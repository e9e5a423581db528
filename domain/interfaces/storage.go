package interfaces

import "pom_automation/domain/entities"

// CredentialStore persists the one registered user between runs.
// Persistence is best effort: Save logs failures instead of returning them
// and Load reports absence for anything it cannot read.
type CredentialStore interface {
	// Save overwrites the stored record
	Save(creds entities.Credentials)

	// Load returns the stored record, false when there is none
	Load() (entities.Credentials, bool)

	// Exists reports whether the backing file is present
	Exists() bool

	// Clear removes the stored record
	Clear() error
}

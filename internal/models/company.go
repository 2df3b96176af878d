package models

// Company represents a saved company profile.
type Company struct {
	// ID is the unique identifier for the company (UUID format).
	ID string

	// Name is the company name, unique across the store.
	Name string

	// Partners is the company's partner set. Order affects only display,
	// never computation.
	Partners []Partner

	// CreatedAt is the Unix timestamp when the profile was first saved.
	CreatedAt int64
}

// Validate checks the company name and its partner set.
func (c Company) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "company.name", Message: "name must not be empty"}
	}
	return ValidatePartners(c.Partners)
}

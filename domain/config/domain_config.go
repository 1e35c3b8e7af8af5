package config

// DomainConfig holds configurable business rules and constraints
type DomainConfig struct {
	// Import constraints
	MaxImportBatchSize int
	MaxImportFileBytes int64

	// Contact constraints
	MaxContactsPerUser int
	MaxNotesLength     int
	MaxFieldLength     int

	// Timeline constraints
	MaxTimelineEvents int
	MaxEventLength    int

	// Validation settings
	AllowEmptyNames bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxImportBatchSize: 5000,
		MaxImportFileBytes: 10 << 20,

		MaxContactsPerUser: 20000,
		MaxNotesLength:     10000,
		MaxFieldLength:     500,

		MaxTimelineEvents: 5000,
		MaxEventLength:    5000,

		// Imports are lenient: rows with missing names are kept with
		// empty strings rather than rejected.
		AllowEmptyNames: true,
	}
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	cfg := DefaultDomainConfig()
	if environment == "production" {
		cfg.MaxImportBatchSize = 2000
		cfg.MaxImportFileBytes = 5 << 20
	}
	return cfg
}

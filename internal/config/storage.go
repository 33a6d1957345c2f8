package config

import "fmt"

// StorageConfig holds proof image storage and roster read-mode configuration.
type StorageConfig struct {
	// ProofDir is the base directory for uploaded proof images.
	ProofDir string
	// MaxUploadBytes caps the size of an uploaded proof image.
	MaxUploadBytes int64
	// LenientLoad downgrades roster *read* failures to an empty roster with
	// a warning log, mirroring the legacy fail-soft behavior. Writes always
	// fail loud regardless of this flag. Default is strict.
	LenientLoad bool
}

// LoadStorageConfigFromEnv loads storage configuration from environment variables.
func LoadStorageConfigFromEnv() StorageConfig {
	return StorageConfig{
		ProofDir:       GetEnv("PROOF_DIR", "data/proofs"),
		MaxUploadBytes: GetEnvInt64("PROOF_MAX_UPLOAD_BYTES", 5<<20),
		LenientLoad:    GetEnvBool("ROSTER_LENIENT_LOAD", false),
	}
}

// Validate validates storage configuration.
func (c StorageConfig) Validate() error {
	if c.ProofDir == "" {
		return fmt.Errorf("ProofDir must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MaxUploadBytes must be greater than 0")
	}
	return nil
}

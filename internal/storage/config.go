package storage

import "time"

// MinIOConfig holds MinIO connection configuration for the PDF archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// URLTTL bounds presigned download links.
	URLTTL time.Duration
}

// Enabled reports whether an endpoint was configured at all.
func (c *MinIOConfig) Enabled() bool {
	return c != nil && c.Endpoint != ""
}

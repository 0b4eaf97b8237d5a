package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrMissingCredentials = errors.New("missing credentials")
)

const (
	// SidecarExt is the extension of the metadata file paired with each data file
	SidecarExt = ".JSON"

	DefaultRegion    = "us-east-1"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Config is the root configuration structure
type Config struct {
	Bucket             string `json:"bucket"`                         // target bucket name
	Files              string `json:"files"`                          // local directory for uploads
	Region             string `json:"region,omitempty"`               // signing region (default: us-east-1)
	InsecureSkipVerify bool   `json:"insecure_skip_verify,omitempty"` // accept self-signed endpoints
	VirtualHostedStyle bool   `json:"virtual_hosted_style,omitempty"` // default is path-style addressing
	UploadConcurrency  int    `json:"upload_concurrency,omitempty"`   // default: 1
	LogLevel           string `json:"log_level,omitempty"`            // debug, info, warn, error (default: info)
	LogFormat          string `json:"log_format,omitempty"`           // json, console (default: json)
}

// GetRegion returns the signing region (defaults to us-east-1)
func (c Config) GetRegion() string {
	if c.Region != "" {
		return c.Region
	}
	return DefaultRegion
}

// GetUploadConcurrency returns the number of parallel uploads (defaults to 1)
func (c Config) GetUploadConcurrency() int {
	if c.UploadConcurrency > 0 {
		return c.UploadConcurrency
	}
	return 1
}

// GetLogLevel returns the log level (defaults to info)
func (c Config) GetLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return DefaultLogLevel
}

// GetLogFormat returns the log format (defaults to json)
func (c Config) GetLogFormat() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	return DefaultLogFormat
}

// RequireBucket fails when no target bucket was configured
func (c Config) RequireBucket() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: no bucket configured", ErrInvalidConfig)
	}
	return nil
}

// RequireFiles fails when no upload directory was configured
func (c Config) RequireFiles() error {
	if c.Files == "" {
		return fmt.Errorf("%w: no files directory configured", ErrInvalidConfig)
	}
	return nil
}

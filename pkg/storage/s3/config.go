package s3

// Config holds S3 client configuration
type Config struct {
	Endpoint           string // Base URL of the S3-compatible service
	Region             string // Signing region
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool // Accept self-signed certificates. Default: false
	VirtualHostedStyle bool // Default: path-style, which S3 appliances expect
}

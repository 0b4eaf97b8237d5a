package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Credentials identify the caller against the storage endpoint. They come
// from the environment only and are never written anywhere.
type Credentials struct {
	Endpoint        string `envconfig:"ENDPOINT"              required:"true"`
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"     required:"true"`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" required:"true"`
}

// LoadCredentials reads the endpoint and key pair from the environment.
// Variables that are set but empty count as missing.
func LoadCredentials() (Credentials, error) {
	var c Credentials
	if err := envconfig.Process("", &c); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}

	for _, v := range []struct{ name, value string }{
		{"ENDPOINT", c.Endpoint},
		{"AWS_ACCESS_KEY_ID", c.AccessKeyID},
		{"AWS_SECRET_ACCESS_KEY", c.SecretAccessKey},
	} {
		if v.value == "" {
			return Credentials{}, fmt.Errorf("%w: %s not set", ErrMissingCredentials, v.name)
		}
	}

	return c, nil
}

// String hides the secret so credentials can be logged safely
func (c Credentials) String() string {
	return fmt.Sprintf("endpoint=%s access_key_id=%s", c.Endpoint, c.AccessKeyID)
}

package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building so staging and
// production can share an instance without colliding.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a key builder with an environment-based prefix.
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}
	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix.
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix.
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyRateLimit builds the key for a rate-limit bucket.
func (kb *KeyBuilder) KeyRateLimit(class, identifier string) string {
	return kb.BuildKey(fmt.Sprintf("ratelimit:%s:%s", class, identifier))
}

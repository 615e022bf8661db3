// Package secrets resolves secret references such as "aws://kyc/prod@v2#aadhaar_api_key"
// or "file://kyc/aadhaar_api_key" into plain values.
package secrets

import (
	"errors"
	"strings"
)

// ProviderType names the store a reference points into
type ProviderType string

const (
	// ProviderAWS reads AWS Secrets Manager
	ProviderAWS ProviderType = "aws"
	// ProviderFile reads a mounted secret volume
	ProviderFile ProviderType = "file"
)

var (
	ErrInvalidReference    = errors.New("secrets: invalid reference")
	ErrKeyNotFound         = errors.New("secrets: key not found")
	ErrUnsupportedProvider = errors.New("secrets: unsupported provider")
)

// Reference locates one value: provider://path[@version][#key].
// Without a key the whole payload must be a single value.
type Reference struct {
	Provider ProviderType
	Path     string
	Version  string
	Key      string
}

// ParseReference splits raw into its parts. A missing provider means AWS.
func ParseReference(raw string) (Reference, error) {
	ref := Reference{Provider: ProviderAWS}

	rest := strings.TrimSpace(raw)
	if p, after, ok := strings.Cut(rest, "://"); ok && p != "" {
		ref.Provider = ProviderType(p)
		rest = after
	}
	if before, key, ok := strings.Cut(rest, "#"); ok {
		ref.Key = strings.TrimSpace(key)
		rest = before
	}
	if before, version, ok := strings.Cut(rest, "@"); ok {
		ref.Version = strings.TrimSpace(version)
		rest = before
	}

	ref.Path = strings.Trim(strings.TrimSpace(rest), "/")
	if ref.Path == "" {
		return ref, ErrInvalidReference
	}
	return ref, nil
}

// String renders the reference back in parse syntax; it doubles as the cache key
func (r Reference) String() string {
	var sb strings.Builder
	sb.WriteString(string(r.Provider))
	sb.WriteString("://")
	sb.WriteString(r.Path)
	if r.Version != "" {
		sb.WriteString("@")
		sb.WriteString(r.Version)
	}
	if r.Key != "" {
		sb.WriteString("#")
		sb.WriteString(r.Key)
	}
	return sb.String()
}

// IsReference reports whether raw is a secret reference rather than a literal value
func IsReference(raw string) bool {
	p, _, ok := strings.Cut(raw, "://")
	return ok && p != ""
}

// ProviderFor returns the provider named by raw, AWS when none is given
func ProviderFor(raw string) ProviderType {
	if p, _, ok := strings.Cut(raw, "://"); ok && p != "" {
		return ProviderType(p)
	}
	return ProviderAWS
}

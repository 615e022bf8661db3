package aadhaar

import (
	"context"

	"github.com/richxcame/kyc-nova/pkg/secrets"
)

// ResolveAPIKey returns raw unless it is a secret reference such as
// "aws://kyc/aadhaar#api_key", in which case the value is fetched through m.
func ResolveAPIKey(ctx context.Context, m secrets.Manager, raw string) (string, error) {
	if m == nil || !secrets.IsReference(raw) {
		return raw, nil
	}
	return secrets.Resolve(ctx, m, raw)
}

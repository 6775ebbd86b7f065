// Package leads wires the lead intake and follow-up bounded context.
// Other contexts and binaries import only the interfaces declared here.
package leads

import (
	"context"

	"followup_backend/internal/leads/digest"
)

// DigestRefresher rebuilds and stores today's follow-up digest.
// The scheduler worker depends on this rather than on the service type.
type DigestRefresher interface {
	RefreshDigest(ctx context.Context) (digest.Digest, error)
}

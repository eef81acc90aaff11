package interfaces

import "context"

// ChallengeResponder serves proofs of domain ownership during certificate
// issuance.
type ChallengeResponder interface {
	// Publish makes the proof for a challenge token available to the
	// validation service.
	Publish(ctx context.Context, token, proof string) error

	// CleanUp removes a previously published proof.
	CleanUp(ctx context.Context, token string) error
}

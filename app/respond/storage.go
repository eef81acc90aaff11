// Package respond implements challenge responders.
package respond

import (
	"context"
	"fmt"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
)

// challengePrefix is the well-known path under which validation services
// look up ownership proofs.
const challengePrefix = ".well-known/acme-challenge/"

// StorageResponder serves ownership proofs from a blob container exposed
// behind the site's well-known path.
type StorageResponder struct {
	log       interfaces.Logger
	container interfaces.BlobContainer
}

// NewStorage creates a challenge responder backed by the provided container.
func NewStorage(log interfaces.Logger, container interfaces.BlobContainer) *StorageResponder {
	return &StorageResponder{
		log:       log,
		container: container,
	}
}

// Publish uploads the proof for a challenge token.
func (r *StorageResponder) Publish(ctx context.Context, token, proof string) error {
	key := challengePrefix + token

	if err := r.container.Upload(ctx, key, []byte(proof)); err != nil {
		return fmt.Errorf("publishing challenge %q: %w", token, err)
	}

	r.log.WithField("key", key).Debug("challenge published")

	return nil
}

// CleanUp removes a previously published proof.
func (r *StorageResponder) CleanUp(ctx context.Context, token string) error {
	key := challengePrefix + token

	if err := r.container.Delete(ctx, key); err != nil {
		return fmt.Errorf("cleaning up challenge %q: %w", token, err)
	}

	return nil
}

package respond

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xjbushell/lets-encrypt-azure/common/logging"
)

type recordingContainer struct {
	uploads map[string][]byte
	deletes []string
	err     error
}

func newRecordingContainer() *recordingContainer {
	return &recordingContainer{uploads: make(map[string][]byte)}
}

func (c *recordingContainer) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.uploads[key]
	return ok, nil
}

func (c *recordingContainer) Upload(ctx context.Context, key string, data []byte) error {
	if c.err != nil {
		return c.err
	}

	c.uploads[key] = data
	return nil
}

func (c *recordingContainer) Delete(ctx context.Context, key string) error {
	if c.err != nil {
		return c.err
	}

	c.deletes = append(c.deletes, key)
	return nil
}

func TestPublishWritesUnderWellKnownPath(t *testing.T) {
	container := newRecordingContainer()
	responder := NewStorage(logging.NewDiscard(), container)

	err := responder.Publish(context.Background(), "token123", "proof-value")

	require.NoError(t, err)
	assert.Equal(t, []byte("proof-value"), container.uploads[".well-known/acme-challenge/token123"])
}

func TestCleanUpRemovesProof(t *testing.T) {
	container := newRecordingContainer()
	responder := NewStorage(logging.NewDiscard(), container)

	err := responder.CleanUp(context.Background(), "token123")

	require.NoError(t, err)
	assert.Equal(t, []string{".well-known/acme-challenge/token123"}, container.deletes)
}

func TestPublishWrapsUploadError(t *testing.T) {
	container := newRecordingContainer()
	container.err = errors.New("upload failed")
	responder := NewStorage(logging.NewDiscard(), container)

	err := responder.Publish(context.Background(), "token123", "proof-value")

	require.ErrorIs(t, err, container.err)
	assert.Contains(t, err.Error(), "token123")
}

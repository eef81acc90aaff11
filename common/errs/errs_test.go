package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfiguration("certificateStore.name", "store name is required")

	assert.True(t, IsConfiguration(err))
	assert.Contains(t, err.Error(), "certificateStore.name")
	assert.Contains(t, err.Error(), "store name is required")
}

func TestConfigurationErrorWithoutField(t *testing.T) {
	err := NewConfiguration("", "unable to proceed")

	assert.True(t, IsConfiguration(err))
	assert.Equal(t, "configuration error: unable to proceed", err.Error())
}

func TestAuthorizationDeniedError(t *testing.T) {
	cause := errors.New("403 forbidden")
	err := NewAuthorizationDenied("mystorageaccount", cause)

	assert.True(t, IsAuthorizationDenied(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "mystorageaccount")
}

func TestAuthorizationDeniedDetectedThroughWrapping(t *testing.T) {
	err := fmt.Errorf("probing account: %w", NewAuthorizationDenied("acct", nil))

	assert.True(t, IsAuthorizationDenied(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("secret", "storage-connection", errors.New("404"))

	assert.True(t, IsNotFound(err))
	assert.Equal(t, `secret "storage-connection" not found`, err.Error())
}

func TestPredicatesDoNotMatchOtherErrors(t *testing.T) {
	err := errors.New("network timeout")

	assert.False(t, IsConfiguration(err))
	assert.False(t, IsAuthorizationDenied(err))
	assert.False(t, IsNotFound(err))
}

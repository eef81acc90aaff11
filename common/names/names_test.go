package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageAccount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"removes hyphens", "my-resource-1", "myresource1"},
		{"no hyphens", "myresource", "myresource"},
		{"only hyphens", "---", ""},
		{"leaves other characters", "my.resource_1", "my.resource_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StorageAccount(tt.input))
		})
	}
}

func TestStorageAccountIsIdempotent(t *testing.T) {
	inputs := []string{"my-resource-1", "myresource1", "a-b-c-d"}

	for _, input := range inputs {
		once := StorageAccount(input)
		assert.Equal(t, once, StorageAccount(once))
	}
}

func TestCertificate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"replaces dots", "my.example.com", "my-example-com"},
		{"single label", "localhost", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Certificate(tt.input))
		})
	}
}

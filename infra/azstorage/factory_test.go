package azstorage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountFromConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"full connection string",
			"DefaultEndpointsProtocol=https;AccountName=myaccount;AccountKey=abc==;EndpointSuffix=core.windows.net",
			"myaccount",
		},
		{"development storage", "UseDevelopmentStorage=true", "storage account"},
		{"empty", "", "storage account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, accountFromConnectionString(tt.input))
		})
	}
}

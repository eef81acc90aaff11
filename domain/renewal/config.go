package renewal

import (
	"encoding/json"
	"fmt"
)

// ConfigEntry is one typed configuration section of a renewal request:
// the target resource, the certificate store or the challenge responder.
// Type selects the handler and is matched case-insensitively. Properties
// carries handler-specific settings and may be absent in full or in part;
// absent values are filled in by the resolver's defaulting rules.
type ConfigEntry struct {
	Type       string                 `json:"type" mapstructure:"type"`
	Name       string                 `json:"name" mapstructure:"name"`
	Properties map[string]interface{} `json:"properties" mapstructure:"properties"`
}

// DecodeProperties parses the entry's properties into v. Unknown fields are
// ignored and absent fields leave v untouched, so handlers can pre-populate
// defaults before decoding.
func (e *ConfigEntry) DecodeProperties(v interface{}) error {
	if len(e.Properties) == 0 {
		return nil
	}

	data, err := json.Marshal(e.Properties)
	if err != nil {
		return fmt.Errorf("encoding %s properties: %w", e.Type, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s properties: %w", e.Type, err)
	}

	return nil
}

// RenewalRequest aggregates the configuration for one certificate. All
// sections except HostNames are optional; absent sections are substituted
// with synthetic defaults during resolution.
type RenewalRequest struct {
	HostNames          []string     `json:"hostNames" mapstructure:"hostNames"`
	TargetResource     *ConfigEntry `json:"targetResource" mapstructure:"targetResource"`
	CertificateStore   *ConfigEntry `json:"certificateStore" mapstructure:"certificateStore"`
	ChallengeResponder *ConfigEntry `json:"challengeResponder" mapstructure:"challengeResponder"`
}

package resolve

import (
	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

type targetBuilder func(entry *renewal.ConfigEntry) (*renewal.ResolvedTarget, error)

// targetBuilders maps lower-cased target resource types to their resolution
// functions.
var targetBuilders = map[string]targetBuilder{
	"cdn": resolveCDNTarget,
}

// ResolveTarget resolves the target resource section of a request. The
// section is optional: without it the request renews a certificate that no
// resource consumes directly, and a nil target is returned.
func (r *Resolver) ResolveTarget(req *renewal.RenewalRequest) (*renewal.ResolvedTarget, error) {
	entry := req.TargetResource
	if entry == nil {
		return nil, nil
	}

	build, ok := targetBuilders[normalizeType(entry.Type)]
	if !ok {
		return nil, notImplemented("targetResource", entry.Type)
	}

	return build(entry)
}

type cdnProperties struct {
	ResourceGroupName string   `json:"resourceGroupName"`
	Endpoints         []string `json:"endpoints"`
}

func resolveCDNTarget(entry *renewal.ConfigEntry) (*renewal.ResolvedTarget, error) {
	if entry.Name == "" {
		return nil, errs.NewConfiguration("targetResource.name", "cdn requires a name")
	}

	var props cdnProperties
	if err := entry.DecodeProperties(&props); err != nil {
		return nil, errs.NewConfiguration("targetResource.properties", err.Error())
	}

	resourceGroup := firstOf(props.ResourceGroupName, entry.Name)

	endpoints := props.Endpoints
	if len(endpoints) == 0 {
		endpoints = []string{entry.Name}
	}

	return &renewal.ResolvedTarget{
		Kind:          "cdn",
		Name:          entry.Name,
		ResourceGroup: resourceGroup,
		Endpoints:     endpoints,
	}, nil
}

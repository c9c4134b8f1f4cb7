package azure

import (
	"context"
	"fmt"
	"strings"
)

// =============================================================================
// Registry Credential Lookup
// =============================================================================

// LookupRegistryCredentials finds the Azure Container Registry with the
// given short name anywhere in the subscription and returns its admin
// username and password. The registry must have the admin user enabled.
func (c *Client) LookupRegistryCredentials(ctx context.Context, shortName string) (string, string, error) {
	resourceGroup := ""
	pager := c.registries.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", "", NewProvisionError("list container registries", shortName, err)
		}
		for _, reg := range page.Value {
			if reg.Name == nil || *reg.Name != shortName {
				continue
			}
			if reg.ID == nil {
				continue
			}
			resourceGroup = resourceGroupFromID(*reg.ID)
		}
	}
	if resourceGroup == "" {
		return "", "", fmt.Errorf("%w: %q", ErrRegistryNotFound, shortName)
	}

	creds, err := c.registries.ListCredentials(ctx, resourceGroup, shortName, nil)
	if err != nil {
		return "", "", NewProvisionError("list registry credentials", shortName, err)
	}
	if creds.Username == nil || len(creds.Passwords) == 0 || creds.Passwords[0].Value == nil {
		return "", "", fmt.Errorf("%w: %q", ErrRegistryAdminDisabled, shortName)
	}

	c.logger.Info("registry credentials resolved", "registry", shortName, "resource_group", resourceGroup)
	return *creds.Username, *creds.Passwords[0].Value, nil
}

// resourceGroupFromID extracts the resource group name from an ARM resource
// ID like /subscriptions/<sub>/resourceGroups/<rg>/providers/....
// Returns "" when the ID has no resource group segment.
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

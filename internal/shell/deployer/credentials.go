package deployer

import (
	"context"
	"fmt"

	"github.com/revolv-sh/revolv-deploy/internal/core/registry"
)

// =============================================================================
// Tiered Credential Resolution
// =============================================================================

// ResolveCredentials resolves registry credentials through three tiers:
//
//  1. explicit username and password, when both were passed on the
//     command line (no lookup, no prompt)
//  2. automatic admin-credential lookup, when the server is a managed
//     registry (a lookup failure falls through to the prompt)
//  3. interactive prompt, with the password read unechoed
//
// Credentials are resolved once per run and reused for both instances.
func (d *Deployer) ResolveCredentials(ctx context.Context, ref registry.Reference, explicitUser, explicitPass string) (registry.Credentials, error) {
	creds := registry.Credentials{Reference: ref}

	if explicitUser != "" && explicitPass != "" {
		creds.Username = explicitUser
		creds.Password = explicitPass
		creds.Source = registry.SourceExplicit
		return creds, nil
	}

	if registry.IsManagedRegistry(ref.Server) {
		username, password, err := d.prov.LookupRegistryCredentials(ctx, ref.ShortName)
		if err == nil {
			creds.Username = username
			creds.Password = password
			creds.Source = registry.SourceLookup
			return creds, nil
		}
		d.logger.Warn("registry credential lookup failed, falling back to prompt", "registry", ref.ShortName, "error", err)
	}

	username := explicitUser
	if username == "" {
		var err error
		username, err = d.prompts.ReadLine(fmt.Sprintf("Username for %s", ref.Server))
		if err != nil {
			return registry.Credentials{}, fmt.Errorf("prompt for username: %w", err)
		}
	}
	password, err := d.prompts.ReadSecret(fmt.Sprintf("Password for %s", ref.Server))
	if err != nil {
		return registry.Credentials{}, fmt.Errorf("prompt for password: %w", err)
	}

	creds.Username = username
	creds.Password = password
	creds.Source = registry.SourcePrompt
	if !creds.Complete() {
		return registry.Credentials{}, fmt.Errorf("%w for %s", ErrCredentialsMissing, ref.Server)
	}
	return creds, nil
}

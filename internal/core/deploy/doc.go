// Package deploy provides pure functions for deriving the Azure deployment
// parameters of a Revolv installation.
//
// This package is the functional core of the deploy pipeline. All functions
// are pure except for reads of crypto/rand when generating fresh secrets.
//
// # Functions
//
//   - Naming: Derive resource names from the app name (DeriveAppName,
//     SanitizeStorageAccountName)
//   - Resolution: Assemble the immutable deployment Config (Resolve)
//   - Secrets: Generate the encryption key and shared secret
//     (GenerateEncryptionKey, GenerateSharedSecret)
//   - Settings: Build the per-instance web app environment
//     (AppSettings)
//
// # Usage
//
// The imperative shell (internal/shell/deployer) resolves a Config once at
// startup and passes it unchanged to every provisioning call.
//
//	cfg, err := deploy.Resolve(req, overrides)
//	settings := deploy.AppSettings(cfg, creds, deploy.InstancePrivate)
package deploy

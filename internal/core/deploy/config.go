package deploy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/revolv-sh/revolv-deploy/internal/core/registry"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrStorageNameTooShort is returned when the sanitized storage account
	// name falls below Azure's 3-character minimum.
	ErrStorageNameTooShort = errors.New("storage account name shorter than 3 characters after sanitizing")
)

// =============================================================================
// Types
// =============================================================================

// Request carries the operator-supplied deployment inputs.
type Request struct {
	// ContainerImage is the image reference to deploy,
	// e.g. "revolvregistry.azurecr.io/ari-zks:latest".
	ContainerImage string

	// RegistryUsername and RegistryPassword are optional explicit registry
	// credentials. When both are set, no lookup or prompt happens.
	RegistryUsername string
	RegistryPassword string
}

// Overrides carries optional environment overrides for derived values.
// Empty fields fall back to derivation.
type Overrides struct {
	AppName       string
	ResourceGroup string
	Location      string
	EncryptionKey string
	SharedSecret  string
}

// Config holds every derived deployment parameter. It is constructed once
// per run by Resolve and passed unchanged to each provisioning call.
type Config struct {
	AppName            string `yaml:"app_name"`
	ResourceGroup      string `yaml:"resource_group"`
	Location           string `yaml:"location"`
	WebAppPrivateName  string `yaml:"webapp_private"`
	WebAppPublicName   string `yaml:"webapp_public"`
	AppServicePlanName string `yaml:"app_service_plan"`
	StorageAccountName string `yaml:"storage_account"`
	FileShareName      string `yaml:"file_share"`
	MountPath          string `yaml:"mount_path"`

	// EncryptionKey is 32 random bytes, base64-encoded.
	EncryptionKey string `yaml:"-"`

	// SharedSecret is 32 random bytes, hex-encoded.
	SharedSecret string `yaml:"-"`
}

// =============================================================================
// Resource Naming Functions
// =============================================================================

// appNamePrefix is prepended to generated app names.
const appNamePrefix = "ari-rks-"

// DefaultLocation is the Azure region used when LOCATION is not set.
const DefaultLocation = "eastus"

// DeriveAppName returns userInput unchanged if non-empty, otherwise a
// generated name of the form "ari-rks-" followed by 8 lowercase hex
// characters. The suffix is a display name disambiguator, not a secret;
// a UUID prefix is collision-resistant enough.
//
// Example:
//
//	DeriveAppName("")        // returns e.g. "ari-rks-550e8400"
//	DeriveAppName("custom")  // returns "custom"
func DeriveAppName(userInput string) string {
	if userInput != "" {
		return userInput
	}
	return appNamePrefix + uuid.NewString()[:8]
}

// SanitizeStorageAccountName converts an app name into a candidate Azure
// storage account name: lowercase, stripped to [a-z0-9], truncated to 24
// characters. Azure's 3-character minimum is NOT enforced here; Resolve
// rejects names that end up too short.
//
// Example:
//
//	SanitizeStorageAccountName("ari-rks-550e8400")  // returns "arirks550e8400"
func SanitizeStorageAccountName(appName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(appName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) > 24 {
		name = name[:24]
	}
	return name
}

// =============================================================================
// Config Resolution
// =============================================================================

// Resolve validates the request and assembles the full deployment Config.
//
// Derivations:
//   - AppName: override, else "ari-rks-<8 hex chars>"
//   - ResourceGroup: override, else "<app>-rg"
//   - Location: override, else DefaultLocation
//   - Web apps: "<app>-private" and "<app>-public"
//   - App Service plan: "<app>-plan"
//   - Storage account: sanitized app name (min 3 chars enforced)
//   - File share: "<app>-data", mounted at /data
//   - Secrets: overrides, else freshly generated
func Resolve(req Request, overrides Overrides) (Config, error) {
	if _, err := registry.ParseReference(req.ContainerImage); err != nil {
		return Config{}, err
	}

	appName := DeriveAppName(overrides.AppName)

	storageAccount := SanitizeStorageAccountName(appName)
	if len(storageAccount) < 3 {
		return Config{}, fmt.Errorf("%w: app name %q yields %q", ErrStorageNameTooShort, appName, storageAccount)
	}

	resourceGroup := overrides.ResourceGroup
	if resourceGroup == "" {
		resourceGroup = appName + "-rg"
	}

	location := overrides.Location
	if location == "" {
		location = DefaultLocation
	}

	encryptionKey := overrides.EncryptionKey
	if encryptionKey == "" {
		var err error
		encryptionKey, err = GenerateEncryptionKey()
		if err != nil {
			return Config{}, fmt.Errorf("generate encryption key: %w", err)
		}
	}

	sharedSecret := overrides.SharedSecret
	if sharedSecret == "" {
		var err error
		sharedSecret, err = GenerateSharedSecret()
		if err != nil {
			return Config{}, fmt.Errorf("generate shared secret: %w", err)
		}
	}

	return Config{
		AppName:            appName,
		ResourceGroup:      resourceGroup,
		Location:           location,
		WebAppPrivateName:  appName + "-private",
		WebAppPublicName:   appName + "-public",
		AppServicePlanName: appName + "-plan",
		StorageAccountName: storageAccount,
		FileShareName:      appName + "-data",
		MountPath:          "/data",
		EncryptionKey:      encryptionKey,
		SharedSecret:       sharedSecret,
	}, nil
}

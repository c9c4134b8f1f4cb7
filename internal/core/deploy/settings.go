package deploy

import (
	"strings"

	"github.com/revolv-sh/revolv-deploy/internal/core/registry"
)

// =============================================================================
// Instances
// =============================================================================

// Instance identifies one of the two web app instances. Both run the same
// image; the private instance answers internal traffic and the public one
// serves end users.
type Instance string

const (
	InstancePrivate Instance = "private"
	InstancePublic  Instance = "public"
)

// WebAppName returns the web app name for this instance.
func (i Instance) WebAppName(cfg Config) string {
	if i == InstancePrivate {
		return cfg.WebAppPrivateName
	}
	return cfg.WebAppPublicName
}

// =============================================================================
// App Settings
// =============================================================================

// AppSettings builds the runtime environment for one web app instance.
// Both instances receive identical registry credentials and secrets; only
// INSTANCE_ID and ALLOW_PRIVATE_ACCESS differ.
//
// DATABASE_URL points at a SQLite file on the shared mount so both
// instances see the same database.
func AppSettings(cfg Config, creds registry.Credentials, instance Instance) map[string]string {
	allowPrivate := "false"
	if instance == InstancePrivate {
		allowPrivate = "true"
	}

	return map[string]string{
		"WEBSITES_PORT":        "8000",
		"ENV":                  "azure",
		"INSTANCE_ID":          string(instance),
		"ALLOW_PRIVATE_ACCESS": allowPrivate,
		"ENCRYPTION_KEY":       cfg.EncryptionKey,
		"REVOLV_SHARED_SECRET": cfg.SharedSecret,
		"DATABASE_URL":         "sqlite:////" + strings.TrimPrefix(cfg.MountPath, "/") + "/data.db",

		// Image pull credentials for the Linux container site.
		"DOCKER_REGISTRY_SERVER_URL":      "https://" + creds.Server,
		"DOCKER_REGISTRY_SERVER_USERNAME": creds.Username,
		"DOCKER_REGISTRY_SERVER_PASSWORD": creds.Password,
	}
}

package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revolv-sh/revolv-deploy/internal/core/registry"
)

func testConfig() Config {
	return Config{
		AppName:           "ari-rks-abcd1234",
		WebAppPrivateName: "ari-rks-abcd1234-private",
		WebAppPublicName:  "ari-rks-abcd1234-public",
		MountPath:         "/data",
		EncryptionKey:     "key-b64",
		SharedSecret:      "secret-hex",
	}
}

func testCreds() registry.Credentials {
	return registry.Credentials{
		Reference: registry.Reference{
			Server:    "revolvregistry.azurecr.io",
			ImagePath: "ari-zks:latest",
			ShortName: "revolvregistry",
		},
		Username: "revolvregistry",
		Password: "pull-secret",
		Source:   registry.SourceLookup,
	}
}

// =============================================================================
// AppSettings Tests
// =============================================================================

func TestAppSettings_Private(t *testing.T) {
	settings := AppSettings(testConfig(), testCreds(), InstancePrivate)

	assert.Equal(t, "8000", settings["WEBSITES_PORT"])
	assert.Equal(t, "azure", settings["ENV"])
	assert.Equal(t, "private", settings["INSTANCE_ID"])
	assert.Equal(t, "true", settings["ALLOW_PRIVATE_ACCESS"])
	assert.Equal(t, "key-b64", settings["ENCRYPTION_KEY"])
	assert.Equal(t, "secret-hex", settings["REVOLV_SHARED_SECRET"])
	assert.Equal(t, "sqlite:////data/data.db", settings["DATABASE_URL"])
}

func TestAppSettings_Public(t *testing.T) {
	settings := AppSettings(testConfig(), testCreds(), InstancePublic)

	assert.Equal(t, "public", settings["INSTANCE_ID"])
	assert.Equal(t, "false", settings["ALLOW_PRIVATE_ACCESS"])
}

func TestAppSettings_RegistryCredentials(t *testing.T) {
	settings := AppSettings(testConfig(), testCreds(), InstancePublic)

	assert.Equal(t, "https://revolvregistry.azurecr.io", settings["DOCKER_REGISTRY_SERVER_URL"])
	assert.Equal(t, "revolvregistry", settings["DOCKER_REGISTRY_SERVER_USERNAME"])
	assert.Equal(t, "pull-secret", settings["DOCKER_REGISTRY_SERVER_PASSWORD"])
}

func TestAppSettings_IdenticalAcrossInstancesExceptIdentity(t *testing.T) {
	private := AppSettings(testConfig(), testCreds(), InstancePrivate)
	public := AppSettings(testConfig(), testCreds(), InstancePublic)

	delete(private, "INSTANCE_ID")
	delete(private, "ALLOW_PRIVATE_ACCESS")
	delete(public, "INSTANCE_ID")
	delete(public, "ALLOW_PRIVATE_ACCESS")
	assert.Equal(t, private, public)
}

// =============================================================================
// Instance Tests
// =============================================================================

func TestInstanceWebAppName(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "ari-rks-abcd1234-private", InstancePrivate.WebAppName(cfg))
	assert.Equal(t, "ari-rks-abcd1234-public", InstancePublic.WebAppName(cfg))
}

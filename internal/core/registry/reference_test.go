package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ParseReference Tests
// =============================================================================

func TestParseReference_ACR(t *testing.T) {
	ref, err := ParseReference("revolvregistry.azurecr.io/ari-zks:latest")
	require.NoError(t, err)
	assert.Equal(t, "revolvregistry.azurecr.io", ref.Server)
	assert.Equal(t, "ari-zks:latest", ref.ImagePath)
	assert.Equal(t, "revolvregistry", ref.ShortName)
}

func TestParseReference_DockerHub(t *testing.T) {
	ref, err := ParseReference("docker.io/library/nginx")
	require.NoError(t, err)
	assert.Equal(t, "docker.io", ref.Server)
	assert.Equal(t, "library/nginx", ref.ImagePath)
	assert.Equal(t, "docker", ref.ShortName)
}

func TestParseReference_NoSlash(t *testing.T) {
	_, err := ParseReference("ari-zks:latest")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidImageRef)
	assert.Contains(t, err.Error(), "no image name segment")
	assert.Contains(t, err.Error(), "ari-zks:latest")
}

func TestParseReference_EmptyImagePath(t *testing.T) {
	_, err := ParseReference("revolvregistry.azurecr.io/")
	assert.ErrorIs(t, err, ErrInvalidImageRef)
}

func TestParseReference_EmptyHost(t *testing.T) {
	_, err := ParseReference("/ari-zks:latest")
	assert.ErrorIs(t, err, ErrInvalidImageRef)
	assert.Contains(t, err.Error(), "no registry host segment")
}

func TestParseReference_Empty(t *testing.T) {
	_, err := ParseReference("")
	assert.ErrorIs(t, err, ErrInvalidImageRef)
}

func TestParseReference_HostWithoutDot(t *testing.T) {
	ref, err := ParseReference("localhost/app:dev")
	require.NoError(t, err)
	assert.Equal(t, "localhost", ref.Server)
	assert.Equal(t, "localhost", ref.ShortName)
}

func TestParseReference_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		image     string
		wantErr   bool
		server    string
		imagePath string
		shortName string
	}{
		{"acr", "revolvregistry.azurecr.io/ari-zks:latest", false, "revolvregistry.azurecr.io", "ari-zks:latest", "revolvregistry"},
		{"nested-path", "ghcr.io/revolv-sh/ari-zks:v1.2", false, "ghcr.io", "revolv-sh/ari-zks:v1.2", "ghcr"},
		{"no-tag", "registry.example.com/app", false, "registry.example.com", "app", "registry"},
		{"no-slash", "nginx", true, "", "", ""},
		{"tag-only", "ari-zks:latest", true, "", "", ""},
		{"trailing-slash", "registry.example.com/", true, "", "", ""},
		{"leading-slash", "/app", true, "", "", ""},
		{"empty", "", true, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.image)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidImageRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.server, ref.Server)
			assert.Equal(t, tt.imagePath, ref.ImagePath)
			assert.Equal(t, tt.shortName, ref.ShortName)
		})
	}
}

// =============================================================================
// Reference String Tests
// =============================================================================

func TestReferenceString_RoundTrip(t *testing.T) {
	ref, err := ParseReference("revolvregistry.azurecr.io/ari-zks:latest")
	require.NoError(t, err)
	assert.Equal(t, "revolvregistry.azurecr.io/ari-zks:latest", ref.String())
}

// =============================================================================
// IsManagedRegistry Tests
// =============================================================================

func TestIsManagedRegistry_ACR(t *testing.T) {
	assert.True(t, IsManagedRegistry("revolvregistry.azurecr.io"))
}

func TestIsManagedRegistry_DockerHub(t *testing.T) {
	assert.False(t, IsManagedRegistry("docker.io"))
}

func TestIsManagedRegistry_TableDriven(t *testing.T) {
	tests := []struct {
		name   string
		server string
		want   bool
	}{
		{"acr", "myregistry.azurecr.io", true},
		{"docker-hub", "docker.io", false},
		{"ghcr", "ghcr.io", false},
		{"lookalike-prefix", "azurecr.io.evil.example.com", false},
		{"bare-suffix", ".azurecr.io", true},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsManagedRegistry(tt.server))
		})
	}
}

// =============================================================================
// Credentials Tests
// =============================================================================

func TestCredentialsComplete(t *testing.T) {
	creds := Credentials{Username: "admin", Password: "s3cret"}
	assert.True(t, creds.Complete())
}

func TestCredentialsComplete_MissingPassword(t *testing.T) {
	creds := Credentials{Username: "admin"}
	assert.False(t, creds.Complete())
}

func TestCredentialsComplete_Empty(t *testing.T) {
	assert.False(t, Credentials{}.Complete())
}

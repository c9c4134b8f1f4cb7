// Package registry provides pure functions for parsing container registry
// references and modeling registry credentials.
// All functions are pure (no I/O) - credential lookup and prompting live in
// the imperative shell (internal/shell/deployer).
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrInvalidImageRef is returned when an image reference does not have
	// the <host>/<path>[:tag] form.
	ErrInvalidImageRef = errors.New("invalid image reference")
)

// =============================================================================
// Types
// =============================================================================

// Reference is a parsed container image reference.
//
// For "revolvregistry.azurecr.io/ari-zks:latest":
//   - Server:    "revolvregistry.azurecr.io"
//   - ImagePath: "ari-zks:latest"
//   - ShortName: "revolvregistry"
type Reference struct {
	// Server is the registry host (substring before the first "/").
	Server string

	// ImagePath is the repository path including any tag (everything after
	// the first "/").
	ImagePath string

	// ShortName is the registry name without its domain (Server before the
	// first ".").
	ShortName string
}

// String returns the full image reference.
func (r Reference) String() string {
	return r.Server + "/" + r.ImagePath
}

// =============================================================================
// Parsing
// =============================================================================

// managedRegistrySuffix is the domain suffix of Azure Container Registry
// instances, for which admin credentials can be looked up automatically.
const managedRegistrySuffix = ".azurecr.io"

// ParseReference validates and splits a container image reference.
//
// The reference must have the form <host>/<path>[:tag]: at least one "/",
// with non-empty segments on both sides. The registry short name is the
// server host up to its first ".".
//
// Example:
//
//	ParseReference("revolvregistry.azurecr.io/ari-zks:latest")
//	// returns Reference{Server: "revolvregistry.azurecr.io", ImagePath: "ari-zks:latest", ShortName: "revolvregistry"}
func ParseReference(image string) (Reference, error) {
	server, imagePath, found := strings.Cut(image, "/")
	if !found || imagePath == "" {
		return Reference{}, fmt.Errorf("%w: %q has no image name segment, expected <registry-host>/<image>[:tag]", ErrInvalidImageRef, image)
	}
	if server == "" {
		return Reference{}, fmt.Errorf("%w: %q has no registry host segment, expected <registry-host>/<image>[:tag]", ErrInvalidImageRef, image)
	}

	shortName, _, _ := strings.Cut(server, ".")

	return Reference{
		Server:    server,
		ImagePath: imagePath,
		ShortName: shortName,
	}, nil
}

// IsManagedRegistry reports whether the registry server is an Azure
// Container Registry, whose admin credentials can be fetched without
// prompting the operator.
func IsManagedRegistry(server string) bool {
	return strings.HasSuffix(server, managedRegistrySuffix)
}

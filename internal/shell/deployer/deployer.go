// Package deployer sequences a full Revolv deployment: parameter
// resolution, registry credential resolution, operator confirmation, and
// the provisioning calls against Azure.
//
// The pipeline is strictly sequential and fail-fast: the first error aborts
// the run, nothing is retried and nothing is rolled back.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/revolv-sh/revolv-deploy/internal/core/deploy"
	"github.com/revolv-sh/revolv-deploy/internal/core/registry"
	"github.com/revolv-sh/revolv-deploy/internal/shell/prompt"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrCancelled is returned when the operator declines the confirmation
	// prompt.
	ErrCancelled = errors.New("deployment cancelled by operator")

	// ErrCredentialsMissing is returned when no credential tier produced a
	// complete username/password pair.
	ErrCredentialsMissing = errors.New("no registry credentials resolved")
)

// =============================================================================
// Provisioner Interface
// =============================================================================

// Provisioner is the cloud side of the pipeline, implemented by
// internal/shell/azure and by fakes in tests.
type Provisioner interface {
	// EnsureProviders registers required resource providers.
	EnsureProviders(ctx context.Context) error

	// EnsureResourceGroup creates the resource group.
	EnsureResourceGroup(ctx context.Context, cfg deploy.Config) error

	// EnsureStorageAccount creates the storage account and returns its
	// primary access key.
	EnsureStorageAccount(ctx context.Context, cfg deploy.Config) (string, error)

	// EnsureFileShare creates the shared file share.
	EnsureFileShare(ctx context.Context, cfg deploy.Config) error

	// EnsureAppServicePlan creates the Linux App Service plan.
	EnsureAppServicePlan(ctx context.Context, cfg deploy.Config) error

	// DeployWebApp creates one web app instance and returns its host name.
	DeployWebApp(ctx context.Context, cfg deploy.Config, creds registry.Credentials, instance deploy.Instance, storageKey string) (string, error)

	// LookupRegistryCredentials fetches admin credentials for a managed
	// registry by short name.
	LookupRegistryCredentials(ctx context.Context, shortName string) (username, password string, err error)
}

// =============================================================================
// Deployer
// =============================================================================

// Options controls non-interactive behavior.
type Options struct {
	// Yes skips the confirmation prompt.
	Yes bool

	// DryRun prints the resolved plan and stops before touching Azure.
	DryRun bool
}

// Deployer runs the deploy pipeline.
type Deployer struct {
	prov    Provisioner
	prompts prompt.Source
	opts    Options
	out     io.Writer
	logger  *slog.Logger
}

// New creates a Deployer. out receives the plan summary and result URLs;
// it defaults to stdout.
func New(prov Provisioner, prompts prompt.Source, opts Options, out io.Writer, logger *slog.Logger) *Deployer {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Deployer{
		prov:    prov,
		prompts: prompts,
		opts:    opts,
		out:     out,
		logger:  logger.With("component", "deployer"),
	}
}

// plan is the YAML-rendered pre-flight summary. Secrets are omitted.
type plan struct {
	Image     string        `yaml:"image"`
	Registry  string        `yaml:"registry"`
	Config    deploy.Config `yaml:"config"`
	Instances []string      `yaml:"instances"`
}

// Run executes the full pipeline for one deployment request.
func (d *Deployer) Run(ctx context.Context, req deploy.Request, overrides deploy.Overrides) error {
	ref, err := registry.ParseReference(req.ContainerImage)
	if err != nil {
		return err
	}

	cfg, err := deploy.Resolve(req, overrides)
	if err != nil {
		return err
	}

	if err := d.printPlan(req, ref, cfg); err != nil {
		return err
	}
	if d.opts.DryRun {
		d.logger.Info("dry run, stopping before provisioning")
		return nil
	}

	creds, err := d.ResolveCredentials(ctx, ref, req.RegistryUsername, req.RegistryPassword)
	if err != nil {
		return err
	}
	d.logger.Info("registry credentials resolved", "source", string(creds.Source), "registry", ref.Server)

	if !d.opts.Yes {
		ok, err := d.prompts.Confirm(fmt.Sprintf("Deploy %s to resource group %s", req.ContainerImage, cfg.ResourceGroup))
		if err != nil {
			return fmt.Errorf("confirmation prompt: %w", err)
		}
		if !ok {
			return ErrCancelled
		}
	}

	if err := d.prov.EnsureProviders(ctx); err != nil {
		return err
	}
	if err := d.prov.EnsureResourceGroup(ctx, cfg); err != nil {
		return err
	}
	storageKey, err := d.prov.EnsureStorageAccount(ctx, cfg)
	if err != nil {
		return err
	}
	if err := d.prov.EnsureFileShare(ctx, cfg); err != nil {
		return err
	}
	if err := d.prov.EnsureAppServicePlan(ctx, cfg); err != nil {
		return err
	}

	// Both instances get identical credentials; only the instance identity
	// settings differ.
	for _, instance := range []deploy.Instance{deploy.InstancePrivate, deploy.InstancePublic} {
		host, err := d.prov.DeployWebApp(ctx, cfg, creds, instance, storageKey)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "%s instance: https://%s\n", instance, host)
	}

	d.logger.Info("deployment complete", "app", cfg.AppName)
	return nil
}

func (d *Deployer) printPlan(req deploy.Request, ref registry.Reference, cfg deploy.Config) error {
	summary := plan{
		Image:     req.ContainerImage,
		Registry:  ref.Server,
		Config:    cfg,
		Instances: []string{string(deploy.InstancePrivate), string(deploy.InstancePublic)},
	}
	rendered, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	fmt.Fprintf(d.out, "Deployment plan:\n%s", rendered)
	return nil
}

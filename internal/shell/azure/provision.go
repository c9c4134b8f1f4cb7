package azure

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/revolv-sh/revolv-deploy/internal/core/deploy"
	"github.com/revolv-sh/revolv-deploy/internal/core/registry"
)

// Resource providers the deployment depends on.
var requiredProviders = []string{"Microsoft.Storage", "Microsoft.Web"}

const (
	registrationPollInterval = 10 * time.Second
	registrationMaxAttempts  = 30
)

// =============================================================================
// Resource Providers
// =============================================================================

// EnsureProviders registers the Microsoft.Storage and Microsoft.Web resource
// providers if needed and waits for registration to complete.
func (c *Client) EnsureProviders(ctx context.Context) error {
	for _, namespace := range requiredProviders {
		if err := c.ensureProvider(ctx, namespace); err != nil {
			return NewProvisionError("register provider", namespace, err)
		}
	}
	return nil
}

func (c *Client) ensureProvider(ctx context.Context, namespace string) error {
	resp, err := c.providers.Get(ctx, namespace, nil)
	if err != nil {
		return err
	}
	if state := resp.RegistrationState; state != nil && *state == "Registered" {
		return nil
	}

	c.logger.Info("registering resource provider", "namespace", namespace)
	if _, err := c.providers.Register(ctx, namespace, nil); err != nil {
		return err
	}

	for attempt := 0; attempt < registrationMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(registrationPollInterval):
		}

		resp, err := c.providers.Get(ctx, namespace, nil)
		if err != nil {
			continue
		}
		if state := resp.RegistrationState; state != nil && *state == "Registered" {
			return nil
		}
	}
	return ErrProviderRegistration
}

// =============================================================================
// Resource Group
// =============================================================================

// EnsureResourceGroup creates (or updates) the resource group.
func (c *Client) EnsureResourceGroup(ctx context.Context, cfg deploy.Config) error {
	_, err := c.groups.CreateOrUpdate(ctx, cfg.ResourceGroup, armresources.ResourceGroup{
		Location: to.Ptr(cfg.Location),
	}, nil)
	if err != nil {
		return NewProvisionError("create resource group", cfg.ResourceGroup, err)
	}
	c.logger.Info("resource group ready", "name", cfg.ResourceGroup, "location", cfg.Location)
	return nil
}

// =============================================================================
// Storage
// =============================================================================

// EnsureStorageAccount creates the storage account and returns its primary
// access key.
func (c *Client) EnsureStorageAccount(ctx context.Context, cfg deploy.Config) (string, error) {
	poller, err := c.accounts.BeginCreate(ctx, cfg.ResourceGroup, cfg.StorageAccountName, armstorage.AccountCreateParameters{
		Location: to.Ptr(cfg.Location),
		Kind:     to.Ptr(armstorage.KindStorageV2),
		SKU: &armstorage.SKU{
			Name: to.Ptr(armstorage.SKUNameStandardLRS),
		},
	}, nil)
	if err != nil {
		return "", NewProvisionError("create storage account", cfg.StorageAccountName, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return "", NewProvisionError("create storage account", cfg.StorageAccountName, err)
	}
	c.logger.Info("storage account ready", "name", cfg.StorageAccountName)

	keys, err := c.accounts.ListKeys(ctx, cfg.ResourceGroup, cfg.StorageAccountName, nil)
	if err != nil {
		return "", NewProvisionError("list storage account keys", cfg.StorageAccountName, err)
	}
	if len(keys.Keys) == 0 || keys.Keys[0].Value == nil {
		return "", NewProvisionError("list storage account keys", cfg.StorageAccountName, fmt.Errorf("no keys returned"))
	}
	return *keys.Keys[0].Value, nil
}

// EnsureFileShare creates the shared file share on the storage account.
func (c *Client) EnsureFileShare(ctx context.Context, cfg deploy.Config) error {
	_, err := c.shares.Create(ctx, cfg.ResourceGroup, cfg.StorageAccountName, cfg.FileShareName, armstorage.FileShare{}, nil)
	if err != nil {
		return NewProvisionError("create file share", cfg.FileShareName, err)
	}
	c.logger.Info("file share ready", "name", cfg.FileShareName)
	return nil
}

// =============================================================================
// App Service
// =============================================================================

// EnsureAppServicePlan creates the Linux App Service plan (Basic B1).
func (c *Client) EnsureAppServicePlan(ctx context.Context, cfg deploy.Config) error {
	poller, err := c.plans.BeginCreateOrUpdate(ctx, cfg.ResourceGroup, cfg.AppServicePlanName, armappservice.Plan{
		Location: to.Ptr(cfg.Location),
		Kind:     to.Ptr("linux"),
		SKU: &armappservice.SKUDescription{
			Name: to.Ptr("B1"),
			Tier: to.Ptr("Basic"),
		},
		Properties: &armappservice.PlanProperties{
			Reserved: to.Ptr(true), // reserved means Linux
		},
	}, nil)
	if err != nil {
		return NewProvisionError("create app service plan", cfg.AppServicePlanName, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return NewProvisionError("create app service plan", cfg.AppServicePlanName, err)
	}
	c.logger.Info("app service plan ready", "name", cfg.AppServicePlanName)
	return nil
}

// DeployWebApp creates one Linux container web app with the shared file
// share mounted and the instance's app settings applied. Returns the
// default host name of the site.
func (c *Client) DeployWebApp(ctx context.Context, cfg deploy.Config, creds registry.Credentials, instance deploy.Instance, storageKey string) (string, error) {
	name := instance.WebAppName(cfg)
	planID := fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Web/serverfarms/%s",
		c.subscriptionID, cfg.ResourceGroup, cfg.AppServicePlanName)

	site := armappservice.Site{
		Location: to.Ptr(cfg.Location),
		Kind:     to.Ptr("app,linux,container"),
		Properties: &armappservice.SiteProperties{
			ServerFarmID: to.Ptr(planID),
			HTTPSOnly:    to.Ptr(true),
			SiteConfig: &armappservice.SiteConfig{
				LinuxFxVersion: to.Ptr("DOCKER|" + creds.Reference.String()),
				AlwaysOn:       to.Ptr(true),
				AppSettings:    toNameValuePairs(deploy.AppSettings(cfg, creds, instance)),
				AzureStorageAccounts: map[string]*armappservice.AzureStorageInfoValue{
					"data": {
						Type:        to.Ptr(armappservice.AzureStorageTypeAzureFiles),
						AccountName: to.Ptr(cfg.StorageAccountName),
						ShareName:   to.Ptr(cfg.FileShareName),
						AccessKey:   to.Ptr(storageKey),
						MountPath:   to.Ptr(cfg.MountPath),
					},
				},
			},
		},
	}

	poller, err := c.webApps.BeginCreateOrUpdate(ctx, cfg.ResourceGroup, name, site, nil)
	if err != nil {
		return "", NewProvisionError("create web app", name, err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", NewProvisionError("create web app", name, err)
	}

	hostName := ""
	if resp.Properties != nil && resp.Properties.DefaultHostName != nil {
		hostName = *resp.Properties.DefaultHostName
	}
	c.logger.Info("web app ready", "name", name, "instance", string(instance), "host", hostName)
	return hostName, nil
}

// =============================================================================
// Helpers
// =============================================================================

// toNameValuePairs converts an app settings map into the ARM representation,
// sorted by name for deterministic requests.
func toNameValuePairs(settings map[string]string) []*armappservice.NameValuePair {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]*armappservice.NameValuePair, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, &armappservice.NameValuePair{
			Name:  to.Ptr(name),
			Value: to.Ptr(settings[name]),
		})
	}
	return pairs
}

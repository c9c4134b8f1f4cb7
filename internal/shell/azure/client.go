// Package azure implements the Azure provisioning client for the deploy
// pipeline. This is part of the Imperative Shell - it talks to the Azure
// Resource Manager APIs.
package azure

import (
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
)

// Client bundles the ARM service clients used to provision a Revolv
// deployment. Credentials come from the default Azure credential chain
// (environment, managed identity, az CLI login).
type Client struct {
	subscriptionID string

	groups     *armresources.ResourceGroupsClient
	providers  *armresources.ProvidersClient
	accounts   *armstorage.AccountsClient
	shares     *armstorage.FileSharesClient
	plans      *armappservice.PlansClient
	webApps    *armappservice.WebAppsClient
	registries *armcontainerregistry.RegistriesClient

	logger *slog.Logger
}

// NewClient creates a provisioning client for the given subscription.
func NewClient(subscriptionID string, logger *slog.Logger) (*Client, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is required (set AZURE_SUBSCRIPTION_ID)")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Azure credential chain: %w", err)
	}

	return newClientWithCredential(subscriptionID, cred, logger)
}

func newClientWithCredential(subscriptionID string, cred azcore.TokenCredential, logger *slog.Logger) (*Client, error) {
	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create resource groups client: %w", err)
	}
	providers, err := armresources.NewProvidersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create providers client: %w", err)
	}
	accounts, err := armstorage.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage accounts client: %w", err)
	}
	shares, err := armstorage.NewFileSharesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create file shares client: %w", err)
	}
	plans, err := armappservice.NewPlansClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create app service plans client: %w", err)
	}
	webApps, err := armappservice.NewWebAppsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create web apps client: %w", err)
	}
	registries, err := armcontainerregistry.NewRegistriesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create registries client: %w", err)
	}

	return &Client{
		subscriptionID: subscriptionID,
		groups:         groups,
		providers:      providers,
		accounts:       accounts,
		shares:         shares,
		plans:          plans,
		webApps:        webApps,
		registries:     registries,
		logger:         logger.With("component", "azure"),
	}, nil
}

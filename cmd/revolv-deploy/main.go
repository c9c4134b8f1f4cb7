package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/revolv-sh/revolv-deploy/internal/core/deploy"
	"github.com/revolv-sh/revolv-deploy/internal/shell/azure"
	"github.com/revolv-sh/revolv-deploy/internal/shell/deployer"
	"github.com/revolv-sh/revolv-deploy/internal/shell/prompt"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess = 0
	ExitFailure = 1
)

func main() {
	os.Exit(run())
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: revolv-deploy [flags] <container-image> [registry-username] [registry-password]

Deploys the Revolv container image to Azure: resource group, storage
account, file share, Linux App Service plan, and the private and public
web app instances.

Environment overrides: APP_NAME, RESOURCE_GROUP, LOCATION, ENCRYPTION_KEY,
REVOLV_SHARED_SECRET, AZURE_SUBSCRIPTION_ID.

Flags:
`)
	flag.PrintDefaults()
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt")
	dryRun := flag.Bool("dry-run", false, "Print the resolved deployment plan and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("revolv-deploy %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	args := flag.Args()
	if len(args) < 1 || len(args) > 3 {
		usage()
		return ExitFailure
	}

	// Load configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitFailure
	}

	// Setup logger
	logger := SetupLogger(cfg)
	logger.Info("starting revolv-deploy",
		"version", Version,
		"image", args[0],
	)

	req := deploy.Request{ContainerImage: args[0]}
	if len(args) > 1 {
		req.RegistryUsername = args[1]
	}
	if len(args) > 2 {
		req.RegistryPassword = args[2]
	}

	// A dry run never touches Azure, so no client (and no subscription) is
	// needed for it.
	var prov deployer.Provisioner
	if !*dryRun {
		client, err := azure.NewClient(cfg.SubscriptionID, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "azure client error: %v\n", err)
			return ExitFailure
		}
		prov = client
	}

	d := deployer.New(prov, prompt.NewTerminal(), deployer.Options{
		Yes:    *yes,
		DryRun: *dryRun,
	}, os.Stdout, logger)

	if err := d.Run(context.Background(), req, cfg.Overrides()); err != nil {
		if errors.Is(err, deployer.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "deployment cancelled")
			return ExitFailure
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitFailure
	}

	return ExitSuccess
}

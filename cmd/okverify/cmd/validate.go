package cmd

import (
	"fmt"

	"github.com/okhi/okverify/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Validate okverify.yaml",
		Long: `Validate the project's okverify.yaml and credentials.

The notification block, when present, must set title, text, channelId,
channelName and channelDescription. Credentials are taken from
okverify.yaml, .env and the OKHI_* environment variables; missing
credentials are reported but are not an error unless --strict is given.`,
		Usage: "okverify validate [--strict]",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	strict := false
	for _, arg := range args {
		switch arg {
		case "--strict":
			strict = true
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: okverify validate [--strict]", arg)
		}
	}

	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	if cfg.Notification == nil {
		fmt.Fprintln(stdout, "notification: not configured (foreground service disabled)")
	} else {
		fmt.Fprintln(stdout, "notification: ok")
	}

	if !cfg.HasCredentials() {
		if strict {
			return fmt.Errorf("credentials: missing %s or %s", config.EnvBranchID, config.EnvClientKey)
		}
		fmt.Fprintln(stdout, "credentials: missing")
		return nil
	}
	fmt.Fprintf(stdout, "credentials: ok (mode %s)\n", cfg.Auth.Mode)
	return nil
}

func resolveRoot() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	root, err := config.FindProjectRoot()
	if err != nil {
		return "", err
	}
	return root, nil
}

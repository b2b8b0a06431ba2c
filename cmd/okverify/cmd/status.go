package cmd

import (
	"fmt"

	"github.com/okhi/okverify/pkg/config"
	"github.com/okhi/okverify/pkg/okverify"
	"github.com/okhi/okverify/pkg/platform"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show verification setup status",
		Long: `Show the resolved okverify configuration.

Displays the project root, whether a foreground notification is configured,
the credentials in use (client key masked) and whether the running
platform supports address verification.`,
		Usage: "okverify status",
		Run:   runStatus,
	})
}

func runStatus(args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Project: %s\n", cfg.Root)
	fmt.Fprintln(stdout)

	if n := cfg.Notification; n != nil {
		fmt.Fprintf(stdout, "  %-14s %s (%s)\n", "notification:", n.Title, n.ChannelID)
	} else {
		fmt.Fprintf(stdout, "  %-14s none\n", "notification:")
	}
	fmt.Fprintf(stdout, "  %-14s %s\n", "branch:", orNone(cfg.Auth.BranchID))
	fmt.Fprintf(stdout, "  %-14s %s\n", "client key:", mask(cfg.Auth.ClientKey))
	fmt.Fprintf(stdout, "  %-14s %s\n", "mode:", cfg.Auth.Mode)

	supported := "unsupported"
	if okverify.New(okverify.Options{}).Supported() {
		supported = "supported"
	}
	fmt.Fprintf(stdout, "  %-14s %s (%s)\n", "platform:", platform.OS(), supported)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// mask keeps the last four characters of a secret.
func mask(s string) string {
	if s == "" {
		return "none"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

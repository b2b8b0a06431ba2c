package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the okverify CLI version and build time.",
		Usage: "okverify version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "greenhouse",
	Short: "Terminal storefront for a plant catalog",
	Long: `Greenhouse browses a remote plant catalog by category, shows plant details,
and keeps a shopping cart with a running total. Run without a subcommand in a
terminal to open the storefront.`,
	RunE: runRootDefault,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .greenhouse.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("log-file", "", "write diagnostic logs to this file")
	pf.String("base-url", "", "catalog API base URL")
	pf.String("fixture", "", "serve the catalog from a TOML file instead of the API")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = viper.BindPFlag("api.base_url", pf.Lookup("base-url"))
	_ = viper.BindPFlag("catalog.fixture", pf.Lookup("fixture"))
}

func initConfig() {
	// A .env file only fills variables that are not already set.
	_ = godotenv.Load()

	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".greenhouse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("GREENHOUSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// runRootDefault opens the storefront when attached to a terminal and shows
// help otherwise.
func runRootDefault(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return cmd.Help()
	}
	return runShop(shopCmd, nil)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

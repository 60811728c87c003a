// Package cmd implements the foodmap command tree.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	foodmap "github.com/foodmap/foodmap"
	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/pkg/logging"
)

var (
	configFile string
	stateDir   string
	verbose    bool
	quiet      bool
	output     string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "foodmap",
	Short: "Street food place directory and navigation CLI",
	Long: `Foodmap keeps a directory of street food places reconciled across a
local snapshot, a Supabase table, and an embedded fallback dataset.

It can geocode addresses, plan driving and walking routes, and produce
native map hand-off links, all backed by the AMap REST services when an
API key is configured.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is <state-dir>/config.json)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default is $HOME/.foodmap)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "errors only")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format (text|json)")
}

// initConfig loads .env files and wires environment variables into viper.
func initConfig() {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for _, key := range []string{
		"supabase_url",
		"supabase_anon_key",
		"amap_key",
		"amap_security_js_code",
		"amap_rest_key",
	} {
		if err := viper.BindEnv(key); err != nil {
			panic(fmt.Sprintf("Failed to bind %s: %v", key, err))
		}
	}
}

// loadEnvFiles loads .env files from the working directory, most specific
// first so earlier files win.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}

// setupCommand configures logging from flags and the persisted level.
func setupCommand(cmd *cobra.Command, args []string) error {
	level := config.NewResolver(stateDir).LogLevel()
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	logging.SetLevel(level)
	return nil
}

// newClient builds the foodmap client from the global flags.
func newClient() (foodmap.Foodmap, error) {
	dir := stateDir
	if configFile != "" && dir == "" {
		// A bare --config points at the directory holding it.
		dir = strings.TrimSuffix(configFile, "/config.json")
		dir = strings.TrimSuffix(dir, "config.json")
	}
	return foodmap.New(foodmap.WithStateDir(dir))
}

// jsonOutput reports whether --output json was requested.
func jsonOutput() bool {
	return strings.EqualFold(output, "json")
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

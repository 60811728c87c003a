package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	foodmap "github.com/foodmap/foodmap"
	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/pkg/places"
)

var (
	cfgSupabaseURL     string
	cfgSupabaseAnonKey string
	cfgAmapKey         string
	cfgAmapJSCode      string
	cfgAmapRestKey     string
	cfgLogLevel        string
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the persisted configuration",
}

// configShowCmd prints the effective configuration with secrets masked.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

// configSetCmd persists configuration overrides.
var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Persist configuration overrides",
	Long: `Set merges the given values into the state directory's config.json.
Values not passed are left unchanged. Environment variables still take
effect for fields the file leaves empty.`,
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	configSetCmd.Flags().StringVar(&cfgSupabaseURL, "supabase-url", "", "Supabase project URL")
	configSetCmd.Flags().StringVar(&cfgSupabaseAnonKey, "supabase-anon-key", "", "Supabase anon key")
	configSetCmd.Flags().StringVar(&cfgAmapKey, "amap-key", "", "AMap JS API key")
	configSetCmd.Flags().StringVar(&cfgAmapJSCode, "amap-security-js-code", "", "AMap security JS code")
	configSetCmd.Flags().StringVar(&cfgAmapRestKey, "amap-rest-key", "", "AMap REST API key")
	configSetCmd.Flags().StringVar(&cfgLogLevel, "log-level", "", "persisted log level (debug|info|warn|error)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	cfg := fm.Config()

	if jsonOutput() {
		return printJSON(map[string]string{
			"supabaseUrl":        cfg.SupabaseURL,
			"supabaseAnonKey":    mask(cfg.SupabaseAnonKey),
			"amapKey":            mask(cfg.AmapKey),
			"amapSecurityJsCode": mask(cfg.AmapSecurityJSCode),
			"amapRestKey":        mask(cfg.AmapRestKey),
		})
	}

	fmt.Printf("supabase-url:          %s\n", cfg.SupabaseURL)
	fmt.Printf("supabase-anon-key:     %s\n", mask(cfg.SupabaseAnonKey))
	fmt.Printf("amap-key:              %s\n", mask(cfg.AmapKey))
	fmt.Printf("amap-security-js-code: %s\n", mask(cfg.AmapSecurityJSCode))
	fmt.Printf("amap-rest-key:         %s\n", mask(cfg.AmapRestKey))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}

	patch := foodmap.ConfigPatch{}
	if cmd.Flags().Changed("supabase-url") {
		patch.SupabaseURL = places.StringPtr(cfgSupabaseURL)
	}
	if cmd.Flags().Changed("supabase-anon-key") {
		patch.SupabaseAnonKey = places.StringPtr(cfgSupabaseAnonKey)
	}
	if cmd.Flags().Changed("amap-key") {
		patch.AmapKey = places.StringPtr(cfgAmapKey)
	}
	if cmd.Flags().Changed("amap-security-js-code") {
		patch.AmapSecurityJSCode = places.StringPtr(cfgAmapJSCode)
	}
	if cmd.Flags().Changed("amap-rest-key") {
		patch.AmapRestKey = places.StringPtr(cfgAmapRestKey)
	}

	if _, err := fm.SaveConfig(patch); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		if err := config.NewResolver(stateDir).SaveLogLevel(cfgLogLevel); err != nil {
			return fmt.Errorf("saving log level: %w", err)
		}
	}

	fmt.Println("Saved")
	return nil
}

// mask hides all but a short prefix of a credential.
func mask(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:6] + "…"
}

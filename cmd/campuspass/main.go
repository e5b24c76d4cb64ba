// Campuspass is the student onboarding client.
//
// Running without arguments opens the interactive interface: sign up with a
// student ID, confirm an email address, recover a password and read the
// built-in tutorials. Subcommands run the same backend calls one at a time
// for scripting, and inspect the responsive layout at a given size.
//
// Usage:
//
//	campuspass [command] [flags]
//
// See 'campuspass --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muurk/campuspass/internal/config"
	"github.com/muurk/campuspass/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags and the settings resolved from them
var (
	settingsFile string
	settings     config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "campuspass",
	Short: "Student onboarding client",
	Long: `A terminal client for the student onboarding service.

Verify your student ID, confirm your email address, request a password
reset, and work through the built-in tutorials. The layout adapts to the
size of your terminal.

If no command is specified, the interactive interface launches.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runTUI,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFile, "config", "", "Settings file (default: settings.yaml in the config directory)")
	flags.String("api-url", "", "Backend base URL")
	flags.Duration("timeout", 0, "Request timeout")
	flags.Int("retries", 0, "Retries for failed requests")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Log file for the interactive interface")

	bind := map[string]string{
		"api_url":   "api-url",
		"timeout":   "timeout",
		"retries":   "retries",
		"log_level": "log-level",
		"log_file":  "log-file",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(versionCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings(viper.GetViper(), settingsFile)
	if err != nil {
		return err
	}
	settings = s
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("campuspass %s\n", version.Full())
		if info := version.Get(); info.GoVersion != "" {
			fmt.Printf("built with %s\n", info.GoVersion)
		}
	},
}

// Campuspass-mock is a local stand-in for the student onboarding service.
//
// It serves the verification, email and password reset endpoints from an
// in-memory student directory, advertises itself over mDNS so campuspass
// can discover it, and publishes every email it would have sent to a
// websocket inbox.
//
// Usage:
//
//	campuspass-mock serve [flags]
//	campuspass-mock inbox [flags]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/campuspass/internal/discovery"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/mockserver"
	"github.com/muurk/campuspass/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "campuspass-mock",
	Short: "Mock student onboarding backend",
	Long: `A local backend for developing and demonstrating campuspass.

Student records come from a built-in seed or a YAML file. One-time codes and
reset links are never emailed; watch them arrive with 'campuspass-mock inbox'.`,
	Version:      version.Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inboxCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command flags
var (
	host         string
	port         int
	studentsFile string
	noMDNS       bool
	codeTTL      time.Duration
	cooldown     time.Duration
	logLevel     string
	jsonLogs     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock backend",
	Example: `  # Built-in students on the default port
  campuspass-mock serve

  # Custom directory, no mDNS, verbose logging
  campuspass-mock serve --students students.yaml --no-mdns --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", "", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", discovery.DefaultPort, "Listen port")
	serveCmd.Flags().StringVar(&studentsFile, "students", "", "YAML student directory (default: built-in seed)")
	serveCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Do not advertise over mDNS")
	serveCmd.Flags().DurationVar(&codeTTL, "code-ttl", mockserver.CodeTTL, "How long one-time codes stay valid")
	serveCmd.Flags().DurationVar(&cooldown, "cooldown", mockserver.ResendCooldown, "Minimum time between codes for one address")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&jsonLogs, "json", false, "Write logs as JSON")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeWithOptions(logging.Options{Level: logLevel, JSON: jsonLogs}); err != nil {
		return err
	}
	defer logging.Sync()

	srv, err := mockserver.New(&mockserver.Config{
		Host:         host,
		Port:         port,
		StudentsFile: studentsFile,
		NoMDNS:       noMDNS,
		CodeTTL:      codeTTL,
		Cooldown:     cooldown,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Start(); err != nil {
		logging.Error("Server error", zap.Error(err))
		return err
	}
	return nil
}

var inboxURL string

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Print emails the mock backend sends",
	Long: `Connect to the mock backend's inbox stream and print each message.

Recent messages are replayed first. Stop with Ctrl+C.`,
	Example: `  campuspass-mock inbox
  campuspass-mock inbox --url http://192.168.1.20:8787`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wsURL, err := mockserver.InboxURL(inboxURL)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (Ctrl+C to stop)\n\n", wsURL)
		return mockserver.TailInbox(ctx, wsURL, func(m mockserver.InboxMessage) {
			fmt.Printf("[%s] To: %s\n", m.SentAt.Local().Format("15:04:05"), m.To)
			fmt.Printf("Subject: %s\n\n%s\n\n", m.Subject, m.Body)
		})
	},
}

func init() {
	inboxCmd.Flags().StringVar(&inboxURL, "url", fmt.Sprintf("http://127.0.0.1:%d", discovery.DefaultPort), "Backend base URL")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("campuspass-mock %s\n", version.Full())
	},
}

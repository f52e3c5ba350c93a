package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/photofrog-mcp/internal/filter"
	"github.com/ironsheep/photofrog-mcp/internal/imaging"
	"github.com/ironsheep/photofrog-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "photofrog-mcp",
	Short: "MCP server that styles frog photos by expression",
	Long: "photofrog-mcp communicates via MCP protocol over stdin/stdout.\n" +
		"Configure it in your MCP client (e.g., Claude Desktop).",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "photofrog-mcp %s\n", Version)
		fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
	},
}

var filterFlags struct {
	in         string
	out        string
	expression string
	size       string
	format     string
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Style a photo file with an expression and write the result",
	Args:  cobra.NoArgs,
	RunE:  runFilter,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&logLevel, "log-level", "l",
		envOr("PHOTOFROG_LOG_LEVEL", "info"), "Log level (env PHOTOFROG_LOG_LEVEL)",
	)

	filterCmd.Flags().StringVarP(&filterFlags.in, "in", "i", "", "source photo")
	filterCmd.Flags().StringVarP(&filterFlags.out, "out", "o", "", "output file")
	filterCmd.Flags().StringVarP(&filterFlags.expression, "expression", "e", filter.Happy,
		"expression: "+strings.Join(filter.Expressions(), ", "))
	filterCmd.Flags().StringVarP(&filterFlags.size, "size", "s", "",
		"output size: "+strings.Join(imaging.SupportedSizes(), ", ")+" (default: keep source size)")
	filterCmd.Flags().StringVarP(&filterFlags.format, "format", "f", "", "output format: png or jpeg (default: from --out extension)")
	_ = filterCmd.MarkFlagRequired("in")
	_ = filterCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(versionCmd, filterCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupLogging sends logs to stderr (stdout is for MCP protocol).
func setupLogging(_ *cobra.Command, _ []string) error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	return nil
}

func runServer(_ *cobra.Command, _ []string) error {
	log.WithFields(log.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("starting photofrog MCP server")

	srv := server.New()
	srv.SetVersion(Version)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runFilter(_ *cobra.Command, _ []string) error {
	format := filterFlags.format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(filterFlags.out)), ".")
	}
	if !imaging.IsValidFormat(format) {
		return fmt.Errorf("unsupported output format %q", format)
	}

	src, err := imaging.NewSourceCache().Load(filterFlags.in)
	if err != nil {
		return err
	}

	if filterFlags.size != "" {
		src = imaging.Fit(src, filterFlags.size)
	}
	raster := filter.FromImage(src)

	styled, err := filter.NewPipeline().Apply(raster, filterFlags.expression)
	if err != nil {
		return err
	}

	data, err := imaging.Encode(styled, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filterFlags.out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.WithFields(log.Fields{
		"expression": filter.Resolve(filterFlags.expression).Name,
		"out":        filterFlags.out,
		"width":      styled.Width(),
		"height":     styled.Height(),
	}).Info("photo styled")
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"targetsearch/internal/config"
	"targetsearch/internal/display"
	"targetsearch/internal/search"
)

var (
	configPath   string
	targets      []string
	homeOnly     bool
	shortCircuit bool
	maxResults   int
	profileName  string
	rootDir      string
	extension    string
	rawPatterns  bool
	logLevel     string
	showHash     bool
	collectDir   string
	conflict     string
	requireAll   bool
)

// applyFlags overrides config values with the flags that were set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Targets = targets
	}
	if flags.Changed("home-only") {
		cfg.HomeOnly = homeOnly
	}
	if flags.Changed("short-circuit") {
		cfg.ShortCircuit = shortCircuit
	}
	if flags.Changed("max-results") {
		cfg.MaxResults = maxResults
	}
	if flags.Changed("profile") {
		cfg.Profile = profileName
	}
	if flags.Changed("root") {
		cfg.Root = rootDir
	}
	if flags.Changed("ext") {
		cfg.Extension = extension
	}
	if flags.Changed("raw") {
		cfg.RawPatterns = rawPatterns
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("hash") {
		cfg.Fingerprint = showHash
	}
	if flags.Changed("collect") {
		cfg.CollectDir = collectDir
	}
	if flags.Changed("conflict") {
		cfg.ConflictPolicy = conflict
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := search.ParseLogLevel(cfg.LogLevel)
	logger, err := search.InitLogger(cfg.LogDir, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %v\n", err)
	} else {
		defer search.CloseLogger()
	}

	opts, err := cfg.SearchOptions()
	if err != nil {
		return err
	}
	console := display.NewStdoutConsole()
	opts.Observer = console

	report, err := search.Run(opts)
	if err != nil {
		search.LogError("Search failed: %v", err)
		var malformed *search.MalformedWalkResultError
		if errors.As(err, &malformed) {
			return fmt.Errorf("search aborted, walker returned an unexpected path: %w", err)
		}
		return err
	}

	var fingerprints []search.Fingerprint
	if cfg.Fingerprint {
		fingerprints, err = search.FingerprintReport(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error hashing results: %v\n", err)
		}
	}
	console.PrintReport(report, fingerprints)

	if cfg.CollectDir != "" {
		policy, _ := search.ParseConflictPolicy(cfg.ConflictPolicy)
		copied, err := search.Collect(report, search.CollectOptions{TargetDir: cfg.CollectDir, ConflictPolicy: policy})
		if err != nil {
			return err
		}
		n := search.CountCollected(copied)
		search.LogInfo("Collected %d file(s) into %s", n, cfg.CollectDir)
		fmt.Printf("Collected %d file(s) into %s\n", n, cfg.CollectDir)
	}
	if logger != nil {
		fmt.Printf("Log: %s\n", logger.Path())
	}

	if requireAll {
		if _, err := report.Require(cfg.Targets...); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "targetsearch",
		Short: "Locate a known set of files on this machine",
		Long: `Searches for target files stage by stage: the home directory first, then the
filesystem minus noisy system directories, then almost everything.
Example: targetsearch -t special_file.txt -t secret_file.txt --short-circuit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	profiles := strings.Join(search.ProfileNames(), ", ")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "Target file name (can be specified multiple times)")
	rootCmd.Flags().BoolVar(&homeOnly, "home-only", false, "Only search the user's home directory")
	rootCmd.Flags().BoolVarP(&shortCircuit, "short-circuit", "s", false, "Stop as soon as every target is found")
	rootCmd.Flags().IntVar(&maxResults, "max-results", search.DefaultMaxResults, "Maximum matches consumed per stage")
	rootCmd.Flags().StringVar(&profileName, "profile", "", "Exclusion profile ("+profiles+"; default: detected)")
	rootCmd.Flags().StringVarP(&rootDir, "root", "r", "", "Filesystem root for the broad stages")
	rootCmd.Flags().StringVarP(&extension, "ext", "e", "", "Only consider files with this extension (without dot)")
	rootCmd.Flags().BoolVar(&rawPatterns, "raw", false, "Treat targets as regular expression fragments; they must still match only the literal target names")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warning, error)")
	rootCmd.Flags().BoolVar(&showHash, "hash", false, "Print an xxhash fingerprint of every found file")
	rootCmd.Flags().StringVar(&collectDir, "collect", "", "Copy found files into this directory")
	rootCmd.Flags().StringVar(&conflict, "conflict", "skip", "What to do when a collected file exists (skip, overwrite, rename)")
	rootCmd.Flags().BoolVar(&requireAll, "require", false, "Exit with an error unless every target is found")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repochunk/pkg/chunker"
	"repochunk/pkg/config"
	"repochunk/pkg/logging"
	"repochunk/pkg/version"
)

// options mirrors the command-line flags before they are merged into a
// config.Config.
type options struct {
	configPath       string
	outputDir        string
	maxSize          string
	sizeMode         string
	binaryExtensions []string
	binaryMode       string
	ignorePatterns   []string
	encoding         string
	workers          int
	maxFileSizeKB    int
	globalIgnore     string
	debug            bool
}

// NewRootCmd builds the repochunk command tree around logger.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "repochunk [root]",
		Short: "repochunk splits a repository into size-bounded text chunks",
		Long: `repochunk walks a directory, skips binary files and writes the remaining
text files, each prefixed with its path, into chunk-0.txt, chunk-1.txt, ...
so they fit into LLM context windows.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.debug {
				return nil
			}
			if err := logging.Setup(true, "repochunk", version.Version); err != nil {
				return fmt.Errorf("failed to initialize debug logger: %w", err)
			}
			logger = logging.Logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := resolveConfig(cmd, root, opts)
			if err != nil {
				return err
			}

			summary, err := chunker.Serialize(root, cfg, logger)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary.OutputDir)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default: <root>/"+config.DefaultFileName+" if present)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for chunk files (default: a repochunk-output dir under the system temp dir)")
	flags.StringVarP(&opts.maxSize, "max-size", "m", "", "maximum chunk size, e.g. 10MB, 128K or a plain count in lines/tokens mode")
	flags.StringVar(&opts.sizeMode, "size-mode", "", "how chunk size is measured: bytes, lines or tokens")
	flags.StringSliceVar(&opts.binaryExtensions, "binary-ext", nil, "file extensions treated as binary (repeatable)")
	flags.StringVar(&opts.binaryMode, "binary-mode", "", "replace or extend the built-in binary extension list")
	flags.StringSliceVarP(&opts.ignorePatterns, "ignore", "i", nil, "gitignore-style pattern to skip (repeatable)")
	flags.StringVar(&opts.encoding, "encoding", "", "text encoding of input files (default utf-8)")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "number of concurrent file loaders")
	flags.IntVar(&opts.maxFileSizeKB, "max-file-size-kb", 0, "skip files larger than this many KB (0 disables)")
	flags.StringVar(&opts.globalIgnore, "global-ignore", "", "additional ignore file applied before <root>/.repochunkignore")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// resolveConfig loads the config file and overlays explicitly set flags.
func resolveConfig(cmd *cobra.Command, root string, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadOptional(filepath.Join(root, config.DefaultFileName))
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("size-mode") {
		cfg.SizeMode = config.SizeMode(opts.sizeMode)
	}
	if flags.Changed("max-size") {
		cfg.MaxSize = opts.maxSize
	}
	// The capacity unit depends on the final size mode.
	if flags.Changed("size-mode") || flags.Changed("max-size") {
		if cfg.MaxSize == "" {
			cfg.MaxChunkSize = config.DefaultMaxChunkSizeFor(cfg.SizeMode)
		} else {
			size, err := config.ParseSize(cfg.MaxSize, cfg.SizeMode)
			if err != nil {
				return nil, err
			}
			cfg.MaxChunkSize = size
		}
	}
	if flags.Changed("binary-ext") {
		cfg.BinaryExtensions = opts.binaryExtensions
	}
	if flags.Changed("binary-mode") {
		cfg.BinaryExtensionsMode = config.BinaryMode(opts.binaryMode)
	}
	if flags.Changed("ignore") {
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, opts.ignorePatterns...)
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.encoding
	}
	if flags.Changed("workers") {
		cfg.MaxWorkers = opts.workers
	}
	if flags.Changed("max-file-size-kb") {
		cfg.MaxFileSizeKB = opts.maxFileSizeKB
	}
	if flags.Changed("global-ignore") {
		cfg.GlobalIgnoreFile = opts.globalIgnore
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command with the given logger.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"basejump/internal/batch"
	"basejump/internal/config"
	"basejump/internal/log"
	"basejump/internal/tui"
)

// Exit codes for startup failures.
const (
	exitInvalidArgs = 17
	exitOpenFile    = 13
)

const farewell = "Thank you for using basejump!"

var (
	cfgFile   string
	inputBase string
	obases    string
	exprFile  string
	debug     bool
)

// NewRootCmd creates the root command for basejump
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "basejump",
		Short: "Multi-base expression calculator",
		Long: `basejump evaluates arithmetic expressions entered in any base from 2 to 36
and reports each result simultaneously in every configured output base.

Without --file it starts an interactive session; with --file it evaluates
the file's expressions one per line and exits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				usageExit()
			}
			return nil
		},
		RunE: run,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		usageExit()
		return err
	})

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/basejump/config.yaml)")
	rootCmd.Flags().StringVar(&inputBase, "inputbase", "", "base expressions are entered in (2..36)")
	rootCmd.Flags().StringVar(&obases, "obases", "", "comma-separated list of output bases (2..36)")
	rootCmd.Flags().StringVar(&exprFile, "file", "", "read expressions from a file, one per line")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write debug logs to basejump.log")

	return rootCmd
}

// Execute runs the root command. Argument errors exit through usageExit
// before RunE ever runs, so anything surfacing here is a runtime failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "basejump: %v\n", err)
		os.Exit(1)
	}
}

func usageExit() {
	fmt.Fprintln(os.Stderr, "Usage: basejump [--obases 2..36] [--inputbase 2..36] [--file string]")
	os.Exit(exitInvalidArgs)
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		if f, err := os.OpenFile("basejump.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			defer f.Close()
			log.SetOutput(f)
			log.SetDebug(true)
		}
	}

	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Warnf("Failed to load config: %v, using defaults", err)
		cfg = config.New()
	}

	// Flags override whatever the config file provided.
	if cmd.Flags().Changed("inputbase") {
		base, err := config.ParseBase(inputBase)
		if err != nil {
			usageExit()
		}
		cfg.InputBase = base
	}
	if cmd.Flags().Changed("obases") {
		bases, err := config.ParseOutputBases(obases)
		if err != nil {
			usageExit()
		}
		cfg.OutputBases = bases
	}
	if cmd.Flags().Changed("file") {
		if exprFile == "" {
			usageExit()
		}
		cfg.File = exprFile
	}

	if cfg.File != "" {
		return runFile(cfg)
	}
	return runInteractive(cfg)
}

func printStartup(cfg *config.Config) {
	fmt.Println("Welcome to basejump.")
	fmt.Printf("Input base: %d\n", cfg.InputBase)
	fmt.Print("Output bases: ")
	for i, b := range cfg.OutputBases {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Print(b)
	}
	fmt.Println()
}

func runFile(cfg *config.Config) error {
	f, err := os.Open(cfg.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "basejump: can't read from file %q\n", cfg.File)
		os.Exit(exitOpenFile)
	}
	defer f.Close()

	printStartup(cfg)
	log.Debugf("Evaluating expressions from %s", cfg.File)
	proc := batch.New(cfg, os.Stdout, os.Stderr)
	if err := proc.Run(f); err != nil {
		return err
	}
	fmt.Println(farewell)
	return nil
}

func runInteractive(cfg *config.Config) error {
	p := tea.NewProgram(tui.New(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive session: %w", err)
	}
	fmt.Println(farewell)
	return nil
}

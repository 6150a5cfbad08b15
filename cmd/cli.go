package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"solscope/internal/ai"
	"solscope/internal/config"
	"solscope/internal/ui"
)

type CLIConfig struct {
	Address    string
	Question   string
	AIProvider string
	Model      string
	Chain      string
	Refetch    bool
	NoReport   bool
	Verbose    bool
	Timeout    time.Duration
}

func Print() {
	ui.PrintBanner()
}

func PrintFatal(err error) {
	fmt.Println(ui.Red + "[FATAL] " + ui.Reset + err.Error())
	os.Exit(1)
}

// Run parses the command line and dispatches. The analyze flow is the only
// top-level command; with no -question it drops into the interactive loop.
func Run() error {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.Address, "address", "", "contract address to analyze (0x...)")
	flag.StringVar(&cfg.Question, "question", "", "one-shot question about the contract (default: interactive loop)")
	flag.StringVar(&cfg.AIProvider, "provider", "", "generative backend provider (ollama, local-llm)")
	flag.StringVar(&cfg.Model, "model", "", "generative backend model name")
	flag.StringVar(&cfg.Chain, "chain", "", "explorer chain id (default from config)")
	flag.BoolVar(&cfg.Refetch, "fetch", false, "re-fetch artifacts from the explorer even if cached")
	flag.BoolVar(&cfg.NoReport, "no-report", false, "do not persist the rendered digest")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "verbose output")
	flag.DurationVar(&cfg.Timeout, "timeout", 0, "generative backend timeout (default from config)")
	flag.Parse()

	if cfg.Address == "" && flag.NArg() > 0 {
		cfg.Address = flag.Arg(0)
	}

	if cfg.Address == "" {
		flag.Usage()
		return fmt.Errorf("contract address required")
	}
	cfg.Address = strings.ToLower(strings.TrimSpace(cfg.Address))
	if !common.IsHexAddress(cfg.Address) {
		return fmt.Errorf("invalid contract address: %s", cfg.Address)
	}
	cfg.Address = strings.ToLower(common.HexToAddress(cfg.Address).Hex())

	if err := ai.ValidateProvider(cfg.AIProvider); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteAnalyze(ctx, cfg)
}

// MergeConfigs overlays CLI flags on top of the loaded app config.
func (c *CLIConfig) MergeConfigs(appCfg *config.AppConfig) *config.AppConfig {
	if appCfg == nil {
		return appCfg
	}
	if c.AIProvider != "" {
		appCfg.AI.Provider = c.AIProvider
	}
	if c.Model != "" {
		appCfg.AI.Model = c.Model
	}
	if c.Chain != "" {
		appCfg.Explorer.ChainID = c.Chain
	}
	if c.Timeout > 0 {
		appCfg.AI.TimeoutSeconds = int(c.Timeout / time.Second)
	}
	return appCfg
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"solscope/internal/ai"
	"solscope/internal/config"
	"solscope/internal/handler"
	"solscope/internal/logger"
	"solscope/internal/query"
	"solscope/internal/report"
	"solscope/internal/scanner"
	"solscope/internal/store"
	"solscope/internal/ui"
)

// ExecuteAnalyze 获取、分析合约并进入问答
func ExecuteAnalyze(ctx context.Context, cfg *CLIConfig) error {
	if err := logger.InitLogger(); err != nil {
		ui.LogWarn("Failed to init logger: %v", err)
	}
	defer logger.Close()

	appCfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appCfg = cfg.MergeConfigs(appCfg)

	st, err := store.Open(appCfg.Database, appCfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open artifact store: %w", err)
	}
	defer st.Close()

	if cfg.Refetch || !st.HasArtifacts(cfg.Address) {
		ui.LogInfo("Fetching contract %s from explorer...", cfg.Address)
		client := scanner.NewEtherscanClient(appCfg.Explorer.APIKey, appCfg.Explorer.BaseURL, appCfg.Explorer.ChainID)
		contract, err := client.GetContract(ctx, cfg.Address)
		if err != nil {
			return fmt.Errorf("failed to fetch contract: %w", err)
		}
		if err := st.SaveContract(contract); err != nil {
			return fmt.Errorf("failed to persist contract artifacts: %w", err)
		}
		ui.LogSuccess("Fetched %s (%s)", contract.Name, contract.Compiler)
		if contract.IsProxy && contract.Implementation != "" {
			ui.LogWarn("Contract is a proxy; implementation at %s", contract.Implementation)
		}
	}

	result, err := handler.AnalyzeContract(st, cfg.Address)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println()
	fmt.Println(result.Digest)
	fmt.Println()

	if !cfg.NoReport {
		storage := report.NewFileStorage(appCfg.ReportDir)
		path, err := storage.Save(cfg.Address, result.Digest)
		if err != nil {
			ui.LogWarn("Failed to save digest: %v", err)
		} else if cfg.Verbose {
			ui.LogInfo("Digest saved to %s", path)
		}
	}

	backend := newBackend(appCfg, cfg.Verbose)
	if backend != nil {
		defer backend.Close()
	}
	resolver := query.New(backend)

	if cfg.Question != "" {
		fmt.Println(ui.Bold + "A: " + ui.Reset + resolver.Answer(ctx, cfg.Question, result.Knowledge))
		return nil
	}

	return runQuestionLoop(ctx, resolver, result)
}

// newBackend builds the generative fallback client. Failure to construct it
// is not fatal: the resolver degrades to its diagnostic answer.
func newBackend(appCfg *config.AppConfig, verbose bool) ai.Client {
	backend, err := ai.NewClient(ai.ClientConfig{
		Provider: appCfg.AI.Provider,
		BaseURL:  appCfg.AI.BaseURL,
		Model:    appCfg.AI.Model,
		Timeout:  appCfg.AITimeout(),
	})
	if err != nil {
		ui.LogWarn("Generative backend unavailable: %v", err)
		return nil
	}
	if verbose {
		ui.LogInfo("Generative fallback: %s", backend.GetName())
	}
	return backend
}

// runQuestionLoop reads questions line by line until EOF or "exit". Backend
// failures never terminate the loop; they come back as answer strings.
func runQuestionLoop(ctx context.Context, resolver *query.Resolver, result *handler.Result) error {
	fmt.Println(ui.Gray + "Ask about the contract's access surface (exit/quit to leave):" + ui.Reset)

	reader := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(ui.Bold + "Q> " + ui.Reset)
		if !reader.Scan() {
			break
		}
		question := strings.TrimSpace(reader.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer := resolver.Answer(ctx, question, result.Knowledge)
		fmt.Println(ui.Bold + "A: " + ui.Reset + answer)

		if errors.Is(ctx.Err(), context.Canceled) {
			break
		}
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("failed to read question: %w", err)
	}
	return nil
}

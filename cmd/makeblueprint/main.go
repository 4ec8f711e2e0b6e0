// makeblueprint — инструмент командной строки для Make.com:
// сценарии, webhooks и деплой blueprint с автозаменой hook ID.
//
// Использование:
//
//	makeblueprint [--config FILE] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	scenario   Управление сценариями
//	hook       Управление webhooks
//	deploy     Деплой blueprint со свежими webhooks
//	account    Информация об аккаунте
//	blueprint  Офлайн-работа с blueprint
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/makeblueprint/internal/cli"
	"github.com/shaiso/makeblueprint/internal/config"
	"github.com/shaiso/makeblueprint/internal/makeapi"
	"github.com/shaiso/makeblueprint/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	logger := telemetry.SetupLogger()

	var configPath string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "makeblueprint",
		Short:         "Make.com scenario and webhook tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() (*makeapi.Client, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return makeapi.NewClient(makeapi.Options{
			BaseURL:        cfg.BaseURL,
			Token:          cfg.APIToken,
			TeamID:         cfg.TeamID,
			OrganizationID: cfg.OrganizationID,
			Logger:         logger,
		})
	}
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewScenarioCmd(clientFn, outputFn),
		cli.NewHookCmd(clientFn, outputFn),
		cli.NewDeployCmd(clientFn, outputFn),
		cli.NewAccountCmd(clientFn, outputFn),
		cli.NewBlueprintCmd(outputFn),
	)

	ctx := telemetry.WithLogger(context.Background(), logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/makeblueprint/internal/deploy"
	"github.com/shaiso/makeblueprint/internal/mapstore"
	"github.com/shaiso/makeblueprint/internal/telemetry"
)

// NewDeployCmd создаёт команду deploy: развёртывание blueprint-файла
// со свежими webhook'ами вместо захардкоженных hook ID.
func NewDeployCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var file string
	var name string
	var folderID int
	var prefix string
	var storePath string
	var scope string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a blueprint with fresh webhooks",
		Long: `Deploy a blueprint file as a new scenario.

Hardcoded hook IDs in the blueprint are replaced: for every referenced
hook a fresh gateway webhook is provisioned and the blueprint is
rewritten before the scenario is created. The resulting webhook URLs
are printed so incoming requests can be pointed at them right away.

With --mapping-store the old->new mapping is persisted (keyed by
--scope, default: blueprint file name) and reused on the next deploy
of the same blueprint, so repeated deploys do not orphan webhooks.

If deployment fails mid-way, already provisioned webhooks are kept in
Make.com; the local blueprint file stays untouched for a manual retry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read blueprint file: %w", err)
			}

			client, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			opts := deploy.Options{
				Name:       name,
				FolderID:   folderID,
				NamePrefix: prefix,
			}

			var store *mapstore.Store
			if storePath != "" {
				store, err = mapstore.Open(storePath)
				if err != nil {
					return err
				}
				defer store.Close()

				if scope == "" {
					scope = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				}
				opts.Seed, err = store.Load(cmd.Context(), scope)
				if err != nil {
					return err
				}
				if len(opts.Seed) > 0 {
					out.Success(fmt.Sprintf("Reusing %d saved hook mapping(s) for scope %q", len(opts.Seed), scope))
				}
			}

			d := deploy.NewDeployer(client, telemetry.FromContext(cmd.Context()))
			result, err := d.CreateScenarioWithFreshHooksJSON(cmd.Context(), text, opts)
			if err != nil {
				return err
			}

			if store != nil {
				if err := store.Save(cmd.Context(), scope, result.Mapping); err != nil {
					// Сценарий уже создан; несохранённый mapping — не повод падать
					out.Warn(fmt.Sprintf("could not save hook mapping: %v", err))
				}
			}

			out.Success(fmt.Sprintf("Scenario created: %s (ID: %d)", result.Scenario.Name, result.Scenario.ID))

			headers := []string{"HOOK_ID", "NAME", "URL", "REPLACED"}
			rows := make([][]string, len(result.Webhooks))
			for i, wh := range result.Webhooks {
				rows[i] = []string{strconv.Itoa(wh.ID), wh.Name, wh.URL, strconv.Itoa(wh.ReplacedHookID)}
			}
			out.Print(headers, rows, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Blueprint JSON file (required)")
	cmd.Flags().StringVar(&name, "name", "", "Scenario name (default: from blueprint)")
	cmd.Flags().IntVar(&folderID, "folder-id", 0, "Folder to place the scenario in")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Name prefix for provisioned webhooks")
	cmd.Flags().StringVar(&storePath, "mapping-store", "", "SQLite file for persisting hook mappings")
	cmd.Flags().StringVar(&scope, "scope", "", "Mapping scope name (default: blueprint file name)")
	cmd.MarkFlagRequired("file")
	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/makeblueprint/internal/blueprint"
	"github.com/shaiso/makeblueprint/internal/makeapi"
)

// NewScenarioCmd создаёт группу команд для управления сценариями.
func NewScenarioCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage scenarios",
	}

	cmd.AddCommand(
		newScenarioListCmd(clientFn, outputFn),
		newScenarioBlueprintCmd(clientFn, outputFn),
		newScenarioCreateCmd(clientFn, outputFn),
		newScenarioCloneCmd(clientFn, outputFn),
		newScenarioUpdateCmd(clientFn, outputFn),
		newScenarioActivateCmd(clientFn, outputFn, true),
		newScenarioActivateCmd(clientFn, outputFn, false),
		newScenarioRunCmd(clientFn, outputFn),
		newScenarioDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newScenarioListCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			scenarios, err := client.ListScenarios(cmd.Context(), activeOnly)
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "STATUS", "FOLDER"}
			rows := make([][]string, len(scenarios))
			for i, s := range scenarios {
				rows[i] = []string{
					strconv.Itoa(s.ID), s.Name, activeLabel(s.IsActive), strconv.Itoa(s.FolderID),
				}
			}

			out.Print(headers, rows, scenarios)
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active scenarios")
	return cmd
}

func newScenarioBlueprintCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "blueprint <scenario-id>",
		Short: "Show a scenario blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "scenario")
			if err != nil {
				return err
			}
			client, err := clientFn()
			if err != nil {
				return err
			}

			bp, err := client.GetBlueprint(cmd.Context(), id)
			if err != nil {
				return err
			}

			outputFn().Document(bp)
			return nil
		},
	}
}

func newScenarioCreateCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var file string
	var name string
	var folderID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a scenario from a blueprint file",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read blueprint file: %w", err)
			}
			// Валидация до сетевых вызовов
			doc, err := blueprint.Parse(text)
			if err != nil {
				return err
			}
			bpJSON, err := blueprint.FormatForAPI(doc)
			if err != nil {
				return err
			}

			client, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if name == "" {
				name = blueprint.Name(doc)
			}
			scenario, err := client.CreateScenario(cmd.Context(), makeapi.CreateScenarioRequest{
				Blueprint: bpJSON,
				Name:      name,
				FolderID:  folderID,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Scenario created: %s (ID: %d)", scenario.Name, scenario.ID))
			out.Print(
				[]string{"ID", "NAME", "STATUS"},
				[][]string{{strconv.Itoa(scenario.ID), scenario.Name, activeLabel(scenario.IsActive)}},
				scenario,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Blueprint JSON file (required)")
	cmd.Flags().StringVar(&name, "name", "", "Scenario name (default: from blueprint)")
	cmd.Flags().IntVar(&folderID, "folder-id", 0, "Folder to place the scenario in")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newScenarioCloneCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var name string
	var mapPairs []string

	cmd := &cobra.Command{
		Use:   "clone <scenario-id>",
		Short: "Clone a scenario",
		Long: `Clone a scenario from its blueprint.

Hook references can be remapped with repeated --map OLD=NEW flags;
unmapped hooks are kept as is. Use "deploy" instead to provision
fresh webhooks automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "scenario")
			if err != nil {
				return err
			}
			mapping, err := parseMapping(mapPairs)
			if err != nil {
				return err
			}

			client, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			cloned, err := client.CloneScenario(cmd.Context(), id, name, mapping)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Scenario cloned: %s (ID: %d)", cloned.Name, cloned.ID))
			out.Print(
				[]string{"ID", "NAME", "STATUS"},
				[][]string{{strconv.Itoa(cloned.ID), cloned.Name, activeLabel(cloned.IsActive)}},
				cloned,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the clone (required)")
	cmd.Flags().StringArrayVar(&mapPairs, "map", nil, "Hook mapping OLD=NEW (repeatable)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newScenarioUpdateCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <scenario-id>",
		Short: "Replace a scenario blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "scenario")
			if err != nil {
				return err
			}
			text, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read blueprint file: %w", err)
			}
			doc, err := blueprint.Parse(text)
			if err != nil {
				return err
			}
			bpJSON, err := blueprint.FormatForAPI(doc)
			if err != nil {
				return err
			}

			client, err := clientFn()
			if err != nil {
				return err
			}

			scenario, err := client.UpdateBlueprint(cmd.Context(), id, bpJSON, nil)
			if err != nil {
				return err
			}

			outputFn().Success(fmt.Sprintf("Scenario %d updated", scenario.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Blueprint JSON file (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newScenarioActivateCmd(clientFn ClientFn, outputFn OutputFn, activate bool) *cobra.Command {
	use, short := "activate <scenario-id>", "Activate a scenario"
	if !activate {
		use, short = "deactivate <scenario-id>", "Deactivate a scenario"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "scenario")
			if err != nil {
				return err
			}
			client, err := clientFn()
			if err != nil {
				return err
			}

			var scenario *makeapi.Scenario
			if activate {
				scenario, err = client.ActivateScenario(cmd.Context(), id)
			} else {
				scenario, err = client.DeactivateScenario(cmd.Context(), id)
			}
			if err != nil {
				return err
			}

			outputFn().Success(fmt.Sprintf("Scenario %d is now %s", id, activeLabel(scenario.IsActive)))
			return nil
		},
	}
}

func newScenarioRunCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var dataJSON string

	cmd := &cobra.Command{
		Use:   "run <scenario-id>",
		Short: "Run a scenario manually",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "scenario")
			if err != nil {
				return err
			}

			var data map[string]any
			if dataJSON != "" {
				if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
					return fmt.Errorf("invalid --data JSON: %w", err)
				}
			}

			client, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			result, err := client.RunScenario(cmd.Context(), id, data)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Execution started: %s", result.ExecutionID))
			out.Print(
				[]string{"EXECUTION_ID"},
				[][]string{{result.ExecutionID}},
				result,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataJSON, "data", "", "Input data for the trigger (JSON object)")
	return cmd
}

func newScenarioDeleteCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <scenario-id>",
		Short: "Delete a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "scenario")
			if err != nil {
				return err
			}
			client, err := clientFn()
			if err != nil {
				return err
			}

			if err := client.DeleteScenario(cmd.Context(), id); err != nil {
				return err
			}

			outputFn().Success(fmt.Sprintf("Scenario %d deleted", id))
			return nil
		},
	}
}

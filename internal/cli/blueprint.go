package cli

import (
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/makeblueprint/internal/blueprint"
)

// NewBlueprintCmd создаёт группу офлайн-команд для работы с blueprint:
// генерация шаблонов и поиск зашитых webhook ID. Сеть не используется.
func NewBlueprintCmd(outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Generate and inspect scenario blueprints",
	}

	cmd.AddCommand(
		newBlueprintSimpleCmd(outputFn),
		newBlueprintWebhookCmd(outputFn),
		newBlueprintHooksCmd(outputFn),
	)

	return cmd
}

func newBlueprintSimpleCmd(outputFn OutputFn) *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "simple",
		Short: "Emit a minimal blueprint with one HTTP module",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := blueprint.Simple(name, description, nil)
			outputFn().Document(doc)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Simple Scenario", "Scenario name")
	cmd.Flags().StringVar(&description, "description", "", "Scenario description")
	return cmd
}

func newBlueprintWebhookCmd(outputFn OutputFn) *cobra.Command {
	var (
		name        string
		webhookName string
		description string
	)

	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Emit a webhook-triggered blueprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := blueprint.WithWebhook(name, webhookName, description)
			outputFn().Document(doc)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Webhook Scenario", "Scenario name")
	cmd.Flags().StringVar(&webhookName, "webhook-name", "Incoming Webhook", "Webhook module label")
	cmd.Flags().StringVar(&description, "description", "", "Scenario description")
	return cmd
}

func newBlueprintHooksCmd(outputFn OutputFn) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List hardcoded webhook IDs in a blueprint file",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			doc, err := blueprint.Parse(text)
			if err != nil {
				return err
			}

			found := blueprint.FindHooks(doc)
			ids := make([]int, 0, len(found))
			for id := range found {
				ids = append(ids, id)
			}
			sort.Ints(ids)

			rows := make([][]string, len(ids))
			for i, id := range ids {
				rows[i] = []string{strconv.Itoa(id)}
			}

			outputFn().Print([]string{"HOOK_ID"}, rows, ids)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Blueprint JSON file")
	cmd.MarkFlagRequired("file")
	return cmd
}

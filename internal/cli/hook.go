package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/makeblueprint/internal/makeapi"
)

// NewHookCmd создаёт группу команд для управления webhook'ами.
func NewHookCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage webhooks",
	}

	cmd.AddCommand(
		newHookListCmd(clientFn, outputFn),
		newHookCreateCmd(clientFn, outputFn),
		newHookShowCmd(clientFn, outputFn),
		newHookRenameCmd(clientFn, outputFn),
		newHookDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newHookListCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var typeName string
	var assigned bool
	var scenarioID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			opts := makeapi.ListHooksOpts{
				TypeName:          typeName,
				ViewForScenarioID: scenarioID,
			}
			if cmd.Flags().Changed("assigned") {
				opts.Assigned = &assigned
			}

			hooks, err := client.ListHooks(cmd.Context(), opts)
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "TYPE", "SCENARIO", "URL"}
			rows := make([][]string, len(hooks))
			for i, h := range hooks {
				rows[i] = []string{
					strconv.Itoa(h.ID), h.Name, h.TypeName, strconv.Itoa(h.ScenarioID), h.URL,
				}
			}

			out.Print(headers, rows, hooks)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Filter by hook type (e.g. gateway-webhook)")
	cmd.Flags().BoolVar(&assigned, "assigned", false, "Filter by scenario assignment")
	cmd.Flags().IntVar(&scenarioID, "scenario-id", 0, "Hooks available for the scenario")
	return cmd
}

func newHookCreateCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var req makeapi.CreateWebhookRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			hook, err := client.CreateWebhook(cmd.Context(), req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Webhook created: %s (ID: %d)", hook.Name, hook.ID))
			out.Print(
				[]string{"ID", "NAME", "URL"},
				[][]string{{strconv.Itoa(hook.ID), hook.Name, hook.URL}},
				hook,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Webhook name (required)")
	cmd.Flags().StringVar(&req.TypeName, "type", makeapi.HookTypeGateway, "Webhook type")
	cmd.Flags().BoolVar(&req.Method, "method", false, "Include HTTP method in the body")
	cmd.Flags().BoolVar(&req.Headers, "headers", false, "Include headers in the body")
	cmd.Flags().BoolVar(&req.Stringify, "stringify", false, "Deliver JSON payloads as strings")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newHookShowCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "show <hook-id>",
		Short: "Show webhook details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "hook")
			if err != nil {
				return err
			}
			client, err := clientFn()
			if err != nil {
				return err
			}

			hook, err := client.GetHook(cmd.Context(), id)
			if err != nil {
				return err
			}

			outputFn().Print(
				[]string{"ID", "NAME", "TYPE", "SCENARIO", "URL"},
				[][]string{{strconv.Itoa(hook.ID), hook.Name, hook.TypeName, strconv.Itoa(hook.ScenarioID), hook.URL}},
				hook,
			)
			return nil
		},
	}
}

func newHookRenameCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <hook-id>",
		Short: "Rename a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "hook")
			if err != nil {
				return err
			}
			client, err := clientFn()
			if err != nil {
				return err
			}

			hook, err := client.RenameHook(cmd.Context(), id, name)
			if err != nil {
				return err
			}

			outputFn().Success(fmt.Sprintf("Hook %d renamed to %q", hook.ID, hook.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New webhook name (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newHookDeleteCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete <hook-id>",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "hook")
			if err != nil {
				return err
			}
			client, err := clientFn()
			if err != nil {
				return err
			}

			if err := client.DeleteHook(cmd.Context(), id, confirmed); err != nil {
				return err
			}

			outputFn().Success(fmt.Sprintf("Hook %d deleted", id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "confirmed", false, "Confirm deletion of an assigned hook")
	return cmd
}

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <payload_file>",
		Short: "Check a payload document step by step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, _ := cmd.Flags().GetString("variant")

			app.Logger.Debug("validate command", zap.String("file", args[0]), zap.String("variant", variant))

			report, _, err := services.ValidatePayload(app.Ctx, app.Store, app.Logger, args[0], app.SessionOptions(variant))
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), report)
			if !report.Valid {
				return fmt.Errorf("%w: step %s", services.ErrPayloadInvalid, report.FirstBlocked.Label)
			}
			return nil
		},
	}

	cmd.Flags().String("variant", "", "Wizard variant: weekly or assignments")
	return cmd
}

func printReport(out io.Writer, report *services.ValidationReport) {
	fmt.Fprintf(out, "\nValidación (%s)\n\n", report.Variant)
	for i, step := range report.Steps {
		mark := "✓"
		if !step.Errors.Empty() {
			mark = "✗"
		}
		fmt.Fprintf(out, "%s %d. %s\n", mark, i+1, step.Step.Label)
		for _, msg := range step.Errors.Global {
			fmt.Fprintf(out, "     - %s\n", msg)
		}
	}
	fmt.Fprintln(out)
}

// printMessages lists error messages under a heading, if there are any
func printMessages(out io.Writer, messages []string) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintf(out, "\n⚠️  %d problema(s):\n", len(messages))
	for _, msg := range messages {
		fmt.Fprintf(out, "  ✗ %s\n", msg)
	}
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
)

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <payload_file>",
		Short: "Show the final review of a payload document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, _ := cmd.Flags().GetString("variant")
			asJSON, _ := cmd.Flags().GetBool("json")

			app.Logger.Debug("summary command", zap.String("file", args[0]))

			sum, err := services.SummarizePayload(app.Ctx, app.Store, app.Calendar, app.Logger, args[0], app.SessionOptions(variant))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}

			fmt.Fprintf(out, "\nResumen de %s\n\n", sum.Company)
			fmt.Fprintf(out, "Administrador:          %s\n", sum.Admin)
			fmt.Fprintf(out, "Grupos:                 %d\n", sum.Groups)
			for _, g := range sum.WorkersPerGroup {
				fmt.Fprintf(out, "  %-20s %d\n", g.Group, g.Workers)
			}
			fmt.Fprintf(out, "Trabajadores:           %d\n", sum.Workers)
			fmt.Fprintf(out, "Turnos base:            %d\n", sum.BaseShifts)
			fmt.Fprintf(out, "Con turnos semanales:   %d\n", sum.WorkersWithSchedule)
			fmt.Fprintf(out, "Turnos por semana:      %d\n", sum.WeeklyShifts)
			fmt.Fprintf(out, "Turnos planificados:    %d\n", sum.PlannedShifts)
			if sum.Templates > 0 || sum.Assignments > 0 || sum.Unassigned > 0 {
				fmt.Fprintf(out, "Planificaciones:        %d\n", sum.Templates)
				fmt.Fprintf(out, "Asignaciones:           %d\n", sum.Assignments)
				fmt.Fprintf(out, "Sin planificación:      %d\n", sum.Unassigned)
			}

			if sum.Ready {
				fmt.Fprintln(out, "\n✓ Listo para exportar")
			} else {
				printMessages(out, sum.Errors.Global)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().String("variant", "", "Wizard variant: weekly or assignments")
	cmd.Flags().Bool("json", false, "Print the summary as JSON")
	return cmd
}

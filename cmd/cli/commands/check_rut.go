package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/rut"
)

// CheckRutCmd creates the checkRut command
func CheckRutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkRut <rut> [rut...]",
		Short: "Validate one or more RUTs and show their formatted form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, value := range args {
				if rut.IsValid(value) {
					fmt.Fprintf(out, "✓ %s\n", rut.Format(value))
					continue
				}

				invalid++
				if body, check, ok := rut.Split(value); ok {
					fmt.Fprintf(out, "✗ %s (dígito verificador %c, se esperaba %c)\n", value, check, rut.CheckDigit(body))
				} else {
					fmt.Fprintf(out, "✗ %s (formato inválido)\n", value)
				}
			}

			app.Logger.Debug("checkRut command", zap.Int("checked", len(args)), zap.Int("invalid", invalid))
			if invalid > 0 {
				return fmt.Errorf("%d of %d RUTs are invalid", invalid, len(args))
			}
			return nil
		},
	}
}

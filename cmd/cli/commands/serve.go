package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wizard HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *app.Cfg
			if cmd.Flags().Changed("host") {
				cfg.Server.Host, _ = cmd.Flags().GetString("host")
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}

			server := api.NewServer(&cfg, app.Calendar, app.Logger)

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Escuchando en http://%s (Ctrl+C para salir)\n", cfg.Addr())

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			var shutdownCtx context.Context
			var cancel context.CancelFunc
			if cfg.Server.ShutdownTimeout > 0 {
				shutdownCtx, cancel = context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			} else {
				shutdownCtx, cancel = context.WithCancel(context.Background())
			}
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down server: %w", err)
			}
			app.Logger.Info("Server stopped", zap.Int("sessions", server.Sessions().Len()))
			return nil
		},
	}

	cmd.Flags().String("host", "", "Override the configured listen host")
	cmd.Flags().Int("port", 0, "Override the configured listen port")
	return cmd
}

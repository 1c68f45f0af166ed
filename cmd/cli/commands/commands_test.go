package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/internal/config"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/store"
)

func newTestApp(t *testing.T) (*AppContext, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cal, err := NewCalendar(cfg)
	require.NoError(t, err)
	return &AppContext{
		Cfg:      cfg,
		Store:    store.NewFileStore(dir),
		Calendar: cal,
		Logger:   zap.NewNop(),
		Ctx:      context.Background(),
	}, dir
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
		wantErr  bool
	}{
		{"simple", "checkRut 1-9", []string{"checkRut", "1-9"}, false},
		{"double quotes", `importWorkers "Nomina marzo.xlsx" --mode append`, []string{"importWorkers", "Nomina marzo.xlsx", "--mode", "append"}, false},
		{"single quotes", `summary 'mi empresa.json'`, []string{"summary", "mi empresa.json"}, false},
		{"extra spaces", "  validate    a.json  ", []string{"validate", "a.json"}, false},
		{"unclosed quote", `summary "a.json`, nil, true},
		{"unclosed quote with accent", `summary "planificación`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCheckRut(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(CheckRutCmd(app), "123456785")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 12.345.678-5")

	out, err = run(CheckRutCmd(app), "12.345.678-0", "abc")
	assert.Error(t, err)
	assert.Contains(t, out, "se esperaba 5")
	assert.Contains(t, out, "✗ abc (formato inválido)")
}

func TestImportValidateExport(t *testing.T) {
	app, dir := newTestApp(t)

	roster := "RUT\tCorreo\tNombres\tApellidos\tGrupo\n" +
		"22.222.222-2\tana@empresa.cl\tAna\tPérez\tGTS\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nomina.tsv"), []byte(roster), 0644))

	out, err := run(ImportWorkersCmd(app), "nomina.tsv", "--skip-header", "--out", "payload.json")
	require.NoError(t, err)
	assert.Contains(t, out, "1 trabajador(es) leídos")
	assert.Contains(t, out, "grupo creado: GTS")
	assert.FileExists(t, filepath.Join(dir, "payload.json"))

	// Admin and company are still missing
	out, err = run(ValidateCmd(app), "payload.json")
	assert.ErrorIs(t, err, services.ErrPayloadInvalid)
	assert.Contains(t, out, "✗ 1. Administrador")
	assert.Contains(t, out, "✓ 3. Trabajadores")

	_, err = run(ExportCmd(app), "payload.json", "strict.json", "--require-valid")
	assert.ErrorIs(t, err, services.ErrPayloadInvalid)
	assert.NoFileExists(t, filepath.Join(dir, "strict.json"))

	out, err = run(ExportCmd(app), "payload.json", "--format", "xlsx")
	require.NoError(t, err)
	assert.Contains(t, out, "ingreso_geovictoria.xlsx")
	assert.FileExists(t, filepath.Join(dir, "ingreso_geovictoria.xlsx"))

	out, err = run(SummaryCmd(app), "payload.json", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"trabajadores": 1`)
	assert.Contains(t, out, `"listo": false`)
}

func TestImportWorkers_Into(t *testing.T) {
	app, dir := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tsv"), []byte("22.222.222-2\tana@empresa.cl\tAna\tPérez\tGTS\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tsv"), []byte("12.345.678-5\tluis@empresa.cl\tLuis\tSoto\tgts\n"), 0644))

	_, err := run(ImportWorkersCmd(app), "a.tsv", "--out", "payload.json")
	require.NoError(t, err)
	out, err := run(ImportWorkersCmd(app), "b.tsv", "--into", "payload.json", "--mode", "append", "--out", "payload.json")
	require.NoError(t, err)
	assert.Contains(t, out, "2 en la nómina")
	assert.NotContains(t, out, "grupo creado")

	p, err := app.Store.LoadPayload(app.Ctx, "payload.json")
	require.NoError(t, err)
	require.Len(t, p.Groups, 1)
	require.Len(t, p.Workers, 2)
	assert.Equal(t, "GTS", p.Workers[1].Group)
}

func TestImportWorkers_MissingFile(t *testing.T) {
	app, _ := newTestApp(t)
	_, err := run(ImportWorkersCmd(app), "missing.tsv")
	assert.Error(t, err)

	_, err = run(ImportWorkersCmd(app), "missing.tsv", "--format", "pdf")
	assert.Error(t, err)
}

func TestRunInteractive(t *testing.T) {
	app, _ := newTestApp(t)
	commands := map[string]*cobra.Command{"checkRut": CheckRutCmd(app)}

	in := strings.NewReader("help\ncheckRut 12.345.678-5\ncheckRut\nbogus\ncheckRut \"unclosed\nexit\ncheckRut 1-9\n")
	var out bytes.Buffer
	require.NoError(t, runInteractive(in, &out, commands))

	text := out.String()
	assert.Contains(t, text, "checkRut <rut> [rut...]")
	assert.Contains(t, text, "✓ 12.345.678-5")
	assert.Contains(t, text, "❌ Error: requires at least 1 arg(s)")
	assert.Contains(t, text, "Unknown command: bogus")
	assert.Contains(t, text, "Error parsing command")
	assert.Contains(t, text, "Goodbye")
	assert.NotContains(t, text, "✓ 1-9")
}

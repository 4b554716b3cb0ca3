package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/twinview/internal/application/usecase"
	"github.com/bnema/twinview/internal/cli/styles"
	"github.com/bnema/twinview/internal/infrastructure/deps"
)

const doctorTimeout = 5 * time.Second

var doctorPrefix string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the runtime environment",
	Long: `Check that the native libraries the GTK surface host needs are installed,
and that the visit journal can be opened.

Examples:
  twinview doctor                    # Use the system pkg-config paths
  twinview doctor --prefix /opt/wk   # Also search a manual install`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVar(&doctorPrefix, "prefix", "", "extra install prefix for pkg-config")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx, cancel := context.WithTimeout(app.Ctx(), doctorTimeout)
	defer cancel()
	t := app.Theme
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, t.Title.Render("Native libraries"))
	for _, r := range deps.Check(ctx, &deps.PkgConfigProbe{Prefix: doctorPrefix}, deps.RuntimeRequirements) {
		fmt.Fprintln(out, doctorLine(t, r.OK, r.Package, doctorDetail(r)))
	}

	fmt.Fprintln(out, t.Title.Render("Visit journal"))
	journal, err := app.Journal()
	if err == nil {
		_, err = journal.Visits.List(ctx, usecase.ListInput{Limit: 1})
	}
	detail := app.Config.Database.Path
	if err != nil {
		detail = err.Error()
	}
	fmt.Fprintln(out, doctorLine(t, err == nil, "database", detail))
	return nil
}

func doctorDetail(r deps.Result) string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case !r.OK:
		return fmt.Sprintf("%s installed, %s or newer required", r.Version, r.Min)
	default:
		return r.Version
	}
}

func doctorLine(t *styles.Theme, ok bool, label, detail string) string {
	status := t.SuccessStyle.Render(styles.IconCheck)
	if !ok {
		status = t.ErrorStyle.Render(styles.IconX)
	}
	return fmt.Sprintf("  %s %s %s", status, t.Normal.Render(label), t.Subtle.Render(detail))
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/twinview/internal/application/usecase"
	"github.com/bnema/twinview/internal/cli/model"
	"github.com/bnema/twinview/internal/cli/styles"
)

var (
	historyJSON    bool
	historyMax     int
	historySession string
	historyYes     bool
	pruneDays      int
)

const defaultHistoryMax = 50

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the visit journal",
	Long: `Show URLs loaded into the primary and secondary surfaces, newest first.

With --session, show one session's visits in load order.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded visit",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete visits older than the retention period",
	Long: `Delete visits older than --days, or database.retention_days when the flag
is not set.`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd, historyPruneCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show")
	historyCmd.Flags().StringVar(&historySession, "session", "", "show visits of one session")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation prompt")
	historyPruneCmd.Flags().IntVar(&pruneDays, "days", 0, "retention in days (default database.retention_days)")
}

type visitJSON struct {
	Session   string    `json:"session"`
	Role      string    `json:"role"`
	URL       string    `json:"url"`
	VisitedAt time.Time `json:"visited_at"`
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	journal, err := app.Journal()
	if err != nil {
		return err
	}
	input := usecase.ListInput{SessionID: historySession, Limit: historyMax}

	if !historyJSON {
		m := model.NewHistoryModel(app.Ctx(), app.Theme, journal.Visits, input)
		final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		if hm, ok := final.(model.HistoryModel); ok && hm.Err() != nil {
			return hm.Err()
		}
		return nil
	}

	visits, err := journal.Visits.List(app.Ctx(), input)
	if err != nil {
		return err
	}
	out := make([]visitJSON, 0, len(visits))
	for _, v := range visits {
		out = append(out, visitJSON{Session: v.SessionID, Role: string(v.Role), URL: v.URL, VisitedAt: v.VisitedAt})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if !historyYes {
		final, err := tea.NewProgram(styles.NewConfirm(app.Theme, "Delete the whole visit journal?")).Run()
		if err != nil {
			return err
		}
		if confirm, ok := final.(styles.ConfirmModel); !ok || !confirm.Result() {
			fmt.Println(app.Theme.Subtle.Render("Canceled."))
			return nil
		}
	}

	journal, err := app.Journal()
	if err != nil {
		return err
	}
	if err := journal.Visits.Clear(app.Ctx()); err != nil {
		return err
	}
	fmt.Println(app.Theme.SuccessStyle.Render(styles.IconCheck + " Visit journal cleared"))
	return nil
}

func runHistoryPrune(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	days := pruneDays
	if days == 0 {
		days = app.Config.Database.RetentionDays
	}
	if days <= 0 {
		fmt.Println(app.Theme.Subtle.Render("Retention is disabled; nothing to prune."))
		return nil
	}

	journal, err := app.Journal()
	if err != nil {
		return err
	}
	n, err := journal.Visits.Prune(app.Ctx(), days)
	if err != nil {
		return err
	}
	fmt.Println(app.Theme.SuccessStyle.Render(fmt.Sprintf("%s Deleted %d visits older than %d days", styles.IconCheck, n, days)))
	return nil
}

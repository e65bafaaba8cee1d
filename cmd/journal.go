package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect recorded scheduler exchanges",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		exchanges, err := s.ExchangeRepo().RecentExchanges(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			SessionID: sessionID,
		})
		if err != nil {
			return fmt.Errorf("query exchanges: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(exchanges) == 0 {
			fmt.Fprintln(out, "No exchanges found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-16s  %-10s  %-16s  %-6s  %s\n",
			"ID", "Timestamp", "Session", "Previous", "Response", "Next", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range exchanges {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			next := e.NextQuestion
			if e.Success {
				next = fmt.Sprintf("%s (%d)", e.NextQuestion, e.NextConsec)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-16s  %-10s  %-16s  %-6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				clip(e.SessionID, 8),
				clip(orDash(e.Previous), 16),
				clip(orDash(e.Response), 10),
				clip(next, 16),
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise recorded exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := s.ExchangeRepo().Stats(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exchanges:    %d\n", st.Total)
		fmt.Fprintf(out, "Failed:       %d\n", st.Failed)
		fmt.Fprintf(out, "Reported:     %d\n", st.Reported)
		fmt.Fprintf(out, "First try:    %d (%.0f%%)\n", st.FirstTry, st.FirstTryRate()*100)
		fmt.Fprintf(out, "Avg latency:  %.0fms\n", st.AvgLatencyMs)
		return nil
	},
}

func init() {
	journalListCmd.Flags().Int("limit", 20, "Number of exchanges to show")
	journalListCmd.Flags().String("session", "", "Only show exchanges of this session")
	journalStatsCmd.Flags().String("session", "", "Only count exchanges of this session")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalStatsCmd)
}

func openJournal(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveJournalPath(cmd, true)
	if err != nil {
		return nil, fmt.Errorf("resolve journal path: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return s, nil
}

func orDash(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/abhisek/askframe/internal/llm"
	"github.com/abhisek/askframe/internal/store"
)

func newEventsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "events",
		Short: "Inspect recorded generation calls",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent generation events",
		RunE:  runEventsList,
	}
	list.Flags().IntP("limit", "n", 20, "Number of events to show")
	list.Flags().StringP("purpose", "p", "", "Filter by purpose")

	view := &cobra.Command{
		Use:   "view <id>",
		Short: "View the full prompt and reply of a generation event",
		Args:  cobra.ExactArgs(1),
		RunE:  runEventsView,
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated token usage and estimated cost",
		RunE:  runEventsStats,
	}

	c.AddCommand(list, view, stats)
	return c
}

func runEventsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.EventRepo().QueryGenerations(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No generation events found.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-19s  %-12s  %-24s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 126))

	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-12s  %-24s  %-6d  %-6d  %-7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.Purpose, 12),
			truncate(e.Model, 24),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
	return nil
}

func runEventsView(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.EventRepo().GetGeneration(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return fmt.Errorf("event %s not found", args[0])
	}

	out := cmd.OutOrStdout()
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "ID:        %s\n", e.ID)
	fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(out, "Model:     %s\n", e.Model)
	fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(out, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
	}

	printSection(out, sep, "PROMPT", e.RequestBody)
	printSection(out, sep, "REPLY", e.ResponseBody)
	return nil
}

func printSection(out io.Writer, sep, title, body string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(out, body)
}

func runEventsStats(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	stats, err := s.EventRepo().UsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No generation usage recorded yet.")
		return nil
	}

	rule := strings.Repeat("─", 72)

	fmt.Fprintln(out, "Usage by Purpose")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(out, rule)

	var totalCalls, totalIn, totalOut int
	for _, st := range stats {
		fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(st.Key, 16), st.Calls, st.InputTokens, st.OutputTokens,
			st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		totalCalls += st.Calls
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}

	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

	byModel, err := s.EventRepo().UsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(out, rule)

	var totalCost float64
	var unknown []string
	for _, mu := range byModel {
		cost := llm.LookupCost(mu.Key)
		if cost == nil {
			unknown = append(unknown, mu.Key)
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(out, rule)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

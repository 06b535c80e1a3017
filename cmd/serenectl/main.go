package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	tokenFlag string
)

func client() *apiClient {
	return newAPIClient(strings.TrimRight(apiFlag, "/"), tokenFlag, defaultTimeout)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "serenectl",
		Short:         "CLI client for the Serene REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8000", "Serene service base URL")
	root.PersistentFlags().StringVarP(&tokenFlag, "token", "t", os.Getenv("SERENE_TOKEN"), "Bearer token (defaults to $SERENE_TOKEN)")

	var ci checkInArgs
	checkin := &cobra.Command{
		Use:   "checkin",
		Short: "Record a mood check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckIn(client(), ci, cmd.OutOrStdout())
		},
	}
	checkin.Flags().IntVarP(&ci.Mood, "mood", "m", 0, "Mood 1-10 (required)")
	checkin.Flags().StringVar(&ci.Text, "text", "", "Free text note")
	checkin.Flags().IntVarP(&ci.Energy, "energy", "e", 0, "Energy 1-10")
	checkin.Flags().Float64VarP(&ci.SleepHours, "sleep", "s", -1, "Hours slept")
	_ = checkin.MarkFlagRequired("mood")

	var days int
	forecast := &cobra.Command{
		Use:   "forecast",
		Short: "Show the mood trend and next-day prediction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(client(), days, cmd.OutOrStdout())
		},
	}
	forecast.Flags().IntVarP(&days, "days", "d", 30, "Window in days")

	get := func(use, short, path string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGet(client(), path, cmd.OutOrStdout())
			},
		}
	}

	chat := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a message to the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(client(), strings.Join(args, " "), cmd.OutOrStdout())
		},
	}

	journal := &cobra.Command{Use: "journal", Short: "Journal entries and history"}
	journal.AddCommand(
		get("list", "List journal entries and chat history", "/api/journal"),
		&cobra.Command{
			Use:   "add <content>",
			Short: "Write a journal entry",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJournalAdd(client(), strings.Join(args, " "), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a journal entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJournalDelete(client(), args[0], cmd.OutOrStdout())
			},
		},
	)

	root.AddCommand(
		checkin,
		forecast,
		get("insights", "Analyze the latest check-in", "/api/analytics/insights/latest"),
		get("streak", "Show the check-in streak", "/api/analytics/streak"),
		get("report", "Show the weekly report", "/api/analytics/reports/weekly"),
		get("health", "Show service health", "/api/health"),
		chat,
		journal,
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

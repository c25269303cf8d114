package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/sgai/internal/sgai"
)

var historyCmd = &cobra.Command{
	Use:   "history <service> [request-id]",
	Short: "View request history for a service",
	Long: fmt.Sprintf(`View request history for a service.

Services: %s

With a request id the matching record of the selected page is printed.`, strings.Join(sgai.HistoryServices, ", ")),
	Args: cobra.RangeArgs(1, 2),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("page", sgai.DefaultHistoryPage, "Page number")
	historyCmd.Flags().Int("page-size", sgai.DefaultHistoryPageSize, "Results per page (max 100)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	params := sgai.HistoryParams{Service: args[0], Page: page, PageSize: pageSize}

	key, err := creds.Resolve(cmd.Context())
	if err != nil {
		return err
	}
	result := service.History(cmd.Context(), key, params)
	if !result.OK() {
		return finish(result)
	}

	history, err := sgai.DecodeHistoryPage(result.Data)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		row, ok := sgai.FindRequest(history.Requests, args[1])
		if !ok {
			return &resultError{message: fmt.Sprintf("Request %s not found on page %d", args[1], page)}
		}
		return printer.Data(row)
	}

	if jsonOutput {
		return printer.Data(history.Requests)
	}
	if len(history.Requests) == 0 {
		status.Notice("No history found.")
		return nil
	}
	printer.History(params.Service, page, history.Requests, history.HasMore())
	return nil
}

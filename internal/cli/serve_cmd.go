package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/rtalgs/rtalgs/internal/history"
	"github.com/rtalgs/rtalgs/internal/httpapi"
)

var flagServeAddr string

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":8080", "address to listen on")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded runs over HTTP",
	Long: `Start the optional HTTP status server, exposing runs recorded
by --record as JSON (spec §6.5). This never runs a simulation itself —
it only displays the results of runs already executed and recorded.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := history.Open(flagHistoryPath)
	if err != nil {
		return fmt.Errorf("open history ledger: %w", err)
	}
	defer store.Close()

	server := httpapi.NewServer(store)
	log.Printf("serving recorded runs on %s", flagServeAddr)
	return http.ListenAndServe(flagServeAddr, server.Handler())
}

package cmd

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"showflix/internal/server"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default from config)")
}

func serveRun(cmd *cobra.Command, args []string) error {
	addr := cfg.Listen
	if flagListen != "" {
		addr = flagListen
	}

	srv := server.New(prov, logger.Named("server"))
	if err := srv.ListenAndServe(cmd.Context(), addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

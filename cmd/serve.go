package cmd

import (
	"bullposter-cli/server"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.log.Sync()

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		addr := a.cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		return server.New(a.client, db, a.log).ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from BULLPOSTER_HTTP_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gostiff/internal/api"
	"github.com/alexiusacademia/gostiff/internal/assembly"
	"github.com/alexiusacademia/gostiff/internal/material"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis engine over HTTP",
	Long: `Start an HTTP server that accepts models as JSON and returns static
and modal results, Excel workbooks and PDF reports.

Endpoints:
  GET  /api/version
  GET  /api/materials
  GET  /api/combinations
  POST /api/static
  POST /api/modal
  POST /api/{static|modal}/report.{pdf|xlsx}

Settings can also come from gostiff.yaml or GOSTIFF_ADDR, GOSTIFF_RATE
and GOSTIFF_BURST.

Examples:
  gostiff serve
  gostiff serve --addr :9000 --rate 5 --burst 10`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Float64("rate", 2, "Requests per second per client (0 disables limiting)")
	serveCmd.Flags().Int("burst", 5, "Request burst per client")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("rate", serveCmd.Flags().Lookup("rate"))
	viper.BindPFlag("burst", serveCmd.Flags().Lookup("burst"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &api.Handler{
		Library: material.Default(),
		Points:  viper.GetInt("points"),
		Cache:   assembly.NewCache(),
	}
	router := api.NewRouter(h, api.Config{
		Rate:  rate.Limit(viper.GetFloat64("rate")),
		Burst: viper.GetInt("burst"),
	})
	return api.Serve(ctx, viper.GetString("addr"), api.CORS(router))
}

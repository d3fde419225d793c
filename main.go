package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	v1 "github.com/kubealloc/api/v1"
	"github.com/kubealloc/config"
	"github.com/kubealloc/database"
	"github.com/kubealloc/lib/logger"
	"github.com/kubealloc/services"
	"github.com/kubealloc/utils"
)

func main() {
	config.LoadEnv()
	logger.Configure()

	root := &cobra.Command{
		Use:          "kubealloc",
		Short:        "Report resource capacity and usage across a Kubernetes cluster",
		SilenceUsage: true,
	}
	root.AddCommand(newReportCmd(), newServeCmd(), newKeygenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var groupBy []string
	var namespace string
	var output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a one-shot capacity report",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.NewCapacityReportService().GetCapacityReport(cmd.Context(), groupBy, namespace)
			if err != nil {
				return err
			}
			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			utils.RenderCapacityTable(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&groupBy, "group-by", services.DefaultGroupBy, "grouping dimensions: resource, node, namespace, pod")
	cmd.Flags().StringVar(&namespace, "namespace", "", "restrict pod observations to one namespace")
	cmd.Flags().StringVar(&output, "output", "table", "output format: table or json")
	return cmd
}

func newKeygenCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a fresh API key and its bcrypt hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := utils.GenerateAPIKey(length)
			if err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "KUBEALLOC_API_KEY=%s\n", key)
			fmt.Fprintf(cmd.OutOrStdout(), "KUBEALLOC_API_KEY_HASH=%s\n", string(hash))
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", 32, "length of the generated key")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve capacity reports and snapshot history over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			database.Initialize()

			// Set Gin mode
			gin.SetMode(gin.ReleaseMode)

			router := gin.Default()

			// CORS configuration
			router.Use(cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     []string{"GET", "POST", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
				AllowCredentials: true,
			}))

			v1.RegisterRoutes(router.Group("/api/v1"))

			port := config.GetEnv("PORT", "8080")
			log.Info().Str("port", port).Msg("kubealloc API starting")
			return router.Run(":" + port)
		},
	}
}

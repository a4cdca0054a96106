package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/auralis/auralis/internal/app"
	"github.com/auralis/auralis/internal/logger"
)

func SweepCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark every active goal whose week has ended as overdue, once",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if asOf != "" {
				parsed, err := time.Parse(time.RFC3339, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				at = parsed
			}

			cfg := loadConfig()
			defer logger.Flush()

			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer a.Close()

			result, err := a.Sweeper.Sweep(cmd.Context(), at)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "sweep as if it were this RFC 3339 time (default now)")
	return cmd
}

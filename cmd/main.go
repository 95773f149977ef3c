package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"obstetrics-record-service/cmd/bootstrap"
	"obstetrics-record-service/internal/delivery/dto"
	"obstetrics-record-service/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "obstetrics",
		Short:         "Obstetric patient record service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newExportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// Initialize application with all dependencies
	app, err := bootstrap.New(orBackground(ctx))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Run the application
	app.Run()
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Open the record store and apply pending schema versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.Load(orBackground(cmd.Context()))
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s store at schema version %d\n", app.Config.Store.Driver, app.SchemaVersion)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		out string
		q   dto.PatientListQuery
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered patient list as a PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.NewValidator()
			if err := v.Validate(&q); err != nil {
				return fmt.Errorf("invalid export flags: %v", v.FormatValidationErrors(err))
			}

			ctx := orBackground(cmd.Context())
			app, err := bootstrap.Load(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			w := bufio.NewWriter(f)
			if err := app.PatientRecordUsecase.ExportPatientsPDF(ctx, &q, w); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			app.Log.Infof("Patient list written to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "patient-list.pdf", "output file")
	cmd.Flags().StringVar(&q.Search, "search", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&q.Category, "category", "", "all, pregnant or \"post partum\"")
	cmd.Flags().IntVar(&q.AgeMin, "age-min", 0, "minimum age, inclusive")
	cmd.Flags().IntVar(&q.AgeMax, "age-max", 0, "maximum age, inclusive (0 means 100)")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "edd, name or createdAt")

	return cmd
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

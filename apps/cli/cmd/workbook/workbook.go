package workbook

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	archivesrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/repo"
	archivesservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	recordsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	spreadsheetservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/spreadsheet/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/gcp"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/persistence"
	platformstorage "github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/storage"
)

// Command groups workbook helpers.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workbook",
		Short: "Workbook utilities (export/import xlsx)",
	}

	cmd.AddCommand(exportCommand())
	cmd.AddCommand(importCommand())
	return cmd
}

func exportCommand() *cobra.Command {
	var (
		project string
		out     string
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Export the current records to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			svc, records, err := buildServices(ctx, project)
			if err != nil {
				return err
			}

			items, err := records.List(ctx)
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}

			data, err := svc.Export(items)
			if err != nil {
				return fmt.Errorf("build workbook: %w", err)
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}

			fmt.Printf("exported %d records to %s\n", len(items), out)
			return nil
		},
	}

	c.Flags().StringVar(&project, "project", "", "GCP project id (defaults to application credentials)")
	c.Flags().StringVar(&out, "out", "records.xlsx", "output file path")
	return c
}

func importCommand() *cobra.Command {
	var (
		project string
		in      string
	)

	c := &cobra.Command{
		Use:   "import",
		Short: "Import records from an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			svc, _, err := buildServices(ctx, project)
			if err != nil {
				return err
			}

			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			result, err := svc.Import(ctx, f)
			if err != nil {
				return fmt.Errorf("import workbook: %w", err)
			}

			fmt.Printf("created %d records, %d rows failed\n", result.Created, result.Failed)
			for _, row := range result.Rows {
				if row.Error != "" {
					fmt.Printf("  row %d: %s\n", row.Row, row.Error)
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&project, "project", "", "GCP project id (defaults to application credentials)")
	c.Flags().StringVar(&in, "in", "records.xlsx", "input file path")
	return c
}

func buildServices(ctx context.Context, project string) (*spreadsheetservice.Service, *recordsservice.Service, error) {
	client, err := gcp.InitFirestore(ctx, project)
	if err != nil {
		return nil, nil, fmt.Errorf("init firestore: %w", err)
	}

	records := recordsservice.New(recordsrepo.NewFirestoreRepository(client))
	archives := archivesservice.New(archivesrepo.NewFirestoreRepository(client))

	svc := spreadsheetservice.New(
		records,
		archives,
		persistence.NewRowValidator(),
		platformstorage.NewLocalSink("."),
	)
	return svc, records, nil
}

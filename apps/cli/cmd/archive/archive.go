package archive

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	archivesrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/repo"
	archivesservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	recordsrepo "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/repo"
	recordsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/gcp"
)

// Command groups archive helpers.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive utilities (close month, list months)",
	}

	cmd.AddCommand(closeCommand())
	cmd.AddCommand(listCommand())
	return cmd
}

func closeCommand() *cobra.Command {
	var project string

	c := &cobra.Command{
		Use:   "close <month>",
		Short: "Move all current records into the month's archive (YYYY-MM)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			records, archives, err := buildServices(ctx, project)
			if err != nil {
				return err
			}

			current, err := records.List(ctx)
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}

			result, err := archives.CloseMonth(ctx, args[0], current)
			if err != nil {
				return fmt.Errorf("close month: %w", err)
			}

			fmt.Printf("archived %d records under %s\n", result.ArchivedCount, result.Month)
			return nil
		},
	}

	c.Flags().StringVar(&project, "project", "", "GCP project id (defaults to application credentials)")
	return c
}

func listCommand() *cobra.Command {
	var project string

	c := &cobra.Command{
		Use:   "list",
		Short: "List closed archive months",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			_, archives, err := buildServices(ctx, project)
			if err != nil {
				return err
			}

			months, err := archives.ListMonths(ctx)
			if err != nil {
				return fmt.Errorf("list months: %w", err)
			}

			for _, m := range months {
				state := "open"
				if m.Closed() {
					state = "closed " + m.ClosedAt.Format("2006-01-02 15:04")
				}
				fmt.Printf("%s\t%s\n", m.Month, state)
			}
			return nil
		},
	}

	c.Flags().StringVar(&project, "project", "", "GCP project id (defaults to application credentials)")
	return c
}

func buildServices(ctx context.Context, project string) (*recordsservice.Service, *archivesservice.Service, error) {
	client, err := gcp.InitFirestore(ctx, project)
	if err != nil {
		return nil, nil, fmt.Errorf("init firestore: %w", err)
	}

	records := recordsservice.New(recordsrepo.NewFirestoreRepository(client))
	archives := archivesservice.New(archivesrepo.NewFirestoreRepository(client))
	return records, archives, nil
}

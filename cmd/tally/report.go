package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ewisehart/tally/internal/cli"
	"github.com/ewisehart/tally/internal/rates"
	"github.com/ewisehart/tally/internal/report"
	"github.com/ewisehart/tally/internal/service"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize stored transactions by direction and category",
		Long: `Aggregate stored transactions into totals by direction and category.
Amounts in other currencies are restated in the configured base currency
using current exchange rates; transactions with no available rate are
counted and excluded.`,
		RunE: runReport,
	}

	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("batch", "", "Limit the report to one batch")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	batchID, _ := cmd.Flags().GetString("batch")

	for _, date := range []string{from, to} {
		if date == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
		}
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cache := rates.NewCache(viper.GetDuration("rates.ttl"))
	defer cache.Close()
	client := rates.NewClient(viper.GetString("rates.url"))
	converter := rates.NewConverter(client, cache, baseCurrency(), slog.Default())

	filter := service.TransactionFilter{
		BatchID:  batchID,
		FromDate: from,
		ToDate:   to,
	}
	summary, err := report.Build(ctx, store, converter, filter)
	if err != nil {
		return err
	}

	title := "Report"
	switch {
	case from != "" && to != "":
		title = fmt.Sprintf("Report %s to %s", from, to)
	case from != "":
		title = fmt.Sprintf("Report from %s", from)
	case to != "":
		title = fmt.Sprintf("Report through %s", to)
	}
	fmt.Println(cli.FormatTitle(title))

	return cli.RenderReport(os.Stdout, summary)
}

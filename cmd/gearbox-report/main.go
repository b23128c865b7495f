// Command gearbox-report builds a one-shot per-shop turnaround report
// from a spreadsheet CSV export, without touching the database
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"gearbox/internal/core/profile"
	"gearbox/internal/platform/logger"
	"gearbox/internal/services/analytics/repo"
	"gearbox/internal/services/analytics/service"
)

func main() {
	var (
		input  = flag.String("input", "", "path to the repair orders CSV export")
		output = flag.String("output", "", "write the report CSV here instead of stdout")
		top    = flag.Int("top", 0, "limit the report to the N busiest shops (0 = all)")
	)
	flag.Parse()

	l := logger.Get()
	if *input == "" {
		flag.Usage()
		l.Fatal().Msg("missing -input")
	}

	rows, err := repo.ReadCSVFile(*input)
	if err != nil {
		l.Fatal().Err(err).Str("input", *input).Msg("read orders")
	}

	profiles := profile.BuildAll(service.OrdersFromRows(rows), time.Now())

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			l.Fatal().Err(err).Str("output", *output).Msg("create report")
		}
		defer f.Close()
		out = f
	}

	if err := writeReport(out, profiles, *top); err != nil {
		l.Fatal().Err(err).Msg("write report")
	}
	l.Info().Int("orders", len(rows)).Int("shops", len(profiles)).Msg("report done")
}

// writeReport emits one row per shop, busiest first
func writeReport(w io.Writer, profiles map[string]*profile.Profile, top int) error {
	ranked := make([]*profile.Profile, 0, len(profiles))
	for _, p := range profiles {
		ranked = append(ranked, p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalOrders != ranked[j].TotalOrders {
			return ranked[i].TotalOrders > ranked[j].TotalOrders
		}
		return ranked[i].NormalizedName < ranked[j].NormalizedName
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"shop", "state", "total_orders", "active_orders",
		"median_turnaround_days", "variance_days", "trend",
		"shipping_avg_days",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range ranked {
		rec := []string{
			p.DisplayName,
			p.State,
			strconv.Itoa(p.TotalOrders),
			strconv.Itoa(len(p.ActiveOrderIDs)),
			fmt.Sprintf("%.1f", p.MedianTurnaround),
			fmt.Sprintf("%.1f", p.Variance),
			p.Trend.Direction,
			strconv.Itoa(p.Shipping.Avg),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

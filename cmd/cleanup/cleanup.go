// Package cleanup implements the retroactive database sweep command.
package cleanup

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Redoy0/political-violence-monitor/cmd/common"
	"github.com/Redoy0/political-violence-monitor/internal/database"
	"github.com/Redoy0/political-violence-monitor/internal/dedup"
	"github.com/Redoy0/political-violence-monitor/internal/domain"
	"github.com/Redoy0/political-violence-monitor/internal/logger"
)

// Command returns the cleanup command.
func Command() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove duplicate and unattributed incidents from the database",
		Long: `Sweep persisted incidents for near-duplicate pairs (same location,
close dates, similar titles) and for records without an attributed
perpetrator party. The newer record of each duplicate pair is kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewDeps(cmd)
			if err != nil {
				return fmt.Errorf("initializing dependencies: %w", err)
			}

			monitor, err := common.NewMonitor(deps, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer monitor.Close()

			sweeper := &Sweeper{
				repo:   monitor.Incidents,
				logger: deps.Logger.WithComponent("cleanup"),
				dryRun: dryRun,
			}
			return sweeper.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be deleted without deleting")

	return cmd
}

// Sweeper finds and removes duplicate and unattributed incidents.
type Sweeper struct {
	repo   *database.IncidentRepository
	logger logger.Interface
	dryRun bool
}

// Run executes the sweep.
func (s *Sweeper) Run(ctx context.Context) error {
	incidents, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing incidents: %w", err)
	}

	s.logger.Info("Scanning for duplicates", "incidents", len(incidents), "dry_run", s.dryRun)

	duplicates := findDuplicates(incidents)

	var deletedDuplicates, deletedUnattributed int64
	if s.dryRun {
		deletedDuplicates = int64(len(duplicates))
		deletedUnattributed = countUnattributed(incidents)
	} else {
		if len(duplicates) > 0 {
			ids := make([]string, 0, len(duplicates))
			for _, d := range duplicates {
				ids = append(ids, d.ID)
			}
			deletedDuplicates, err = s.repo.DeleteByIDs(ctx, ids)
			if err != nil {
				return fmt.Errorf("deleting duplicates: %w", err)
			}
		}

		deletedUnattributed, err = s.repo.DeleteUnattributed(ctx)
		if err != nil {
			return fmt.Errorf("deleting unattributed incidents: %w", err)
		}
	}

	renderReport(incidents, duplicates, deletedDuplicates, deletedUnattributed, s.dryRun)

	s.logger.Info("Cleanup finished",
		"duplicates_removed", deletedDuplicates,
		"unattributed_removed", deletedUnattributed)
	return nil
}

// findDuplicates returns the older member of every near-duplicate pair.
// Incidents are ordered newest first so the kept record is always the
// most recent one.
func findDuplicates(incidents []domain.Incident) []domain.Incident {
	sorted := make([]domain.Incident, len(incidents))
	copy(sorted, incidents)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	doomed := make(map[string]bool)
	var result []domain.Incident

	for i := range sorted {
		if doomed[sorted[i].ID] {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			if doomed[sorted[j].ID] {
				continue
			}
			if dedup.IsCleanupPair(&sorted[i], &sorted[j]) {
				doomed[sorted[j].ID] = true
				result = append(result, sorted[j])
			}
		}
	}

	return result
}

func countUnattributed(incidents []domain.Incident) int64 {
	var n int64
	for i := range incidents {
		if incidents[i].PoliticalParty == "" || incidents[i].PoliticalParty == domain.UnknownParty {
			n++
		}
	}
	return n
}

func renderReport(incidents, duplicates []domain.Incident, deletedDuplicates, deletedUnattributed int64, dryRun bool) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	action := "Deleted"
	if dryRun {
		action = "Would delete"
	}

	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Incidents scanned", len(incidents)})
	t.AppendRow(table.Row{action + " (duplicates)", deletedDuplicates})
	t.AppendRow(table.Row{action + " (unattributed)", deletedUnattributed})
	t.Render()

	if len(duplicates) == 0 {
		return
	}

	d := table.NewWriter()
	d.SetOutputMirror(os.Stdout)
	d.SetStyle(table.StyleLight)
	d.AppendHeader(table.Row{"Title", "Location", "Date"})
	for i := range duplicates {
		d.AppendRow(table.Row{duplicates[i].Title, duplicates[i].Location, duplicates[i].Date.Format("2006-01-02")})
	}
	d.Render()
}

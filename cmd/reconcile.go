package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"journal-locations/core/config"
	"journal-locations/core/database"
	"journal-locations/core/geocode"
	"journal-locations/core/logger"
	"journal-locations/feature/locations"
	"journal-locations/feature/locations/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile commands
	retryNoData bool
	yesConfirm  bool
)

// reconcileCmd is the parent command for all batch reconciliation sweeps.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run batch sweeps over entries and locations",
	Long: `Reconcile entry place data against saved locations and the geocoding provider.

Sweeps are resumable: each item is committed individually, so an interrupted
run can simply be started again and picks up the remaining work.`,
}

// geocodeReconcileCmd resolves hierarchy data for unlinked GPS entries.
var geocodeReconcileCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Reverse-geocode unlinked entries with GPS data",
	Long: `Looks up hierarchy data for every unlinked, GPS-carrying entry whose
geocode status is still retryable.

Examples:
  # Sweep pending and errored entries
  reconcile geocode

  # Also retry entries the provider previously had no data for
  reconcile geocode --retry-no-data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := buildService(func(cfg *config.Config) {
			cfg.Locations.RetryNoData = retryNoData
		})
		if err != nil {
			return err
		}

		summary, err := svc.GeocodeEntries(cmd.Context(), consoleProgress(l, "geocode"))
		if err != nil {
			return err
		}
		logSummary(l, "Geocode sweep finished", summary)
		return nil
	},
}

// snapReconcileCmd links GPS-only entries to nearby saved locations.
var snapReconcileCmd = &cobra.Command{
	Use:   "snap",
	Short: "Snap GPS-only entries to nearby saved locations",
	Long: `Links every unlinked, unnamed GPS entry to the nearest saved location
within the snap radius. Purely local; no provider calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := buildService(nil)
		if err != nil {
			return err
		}

		summary, err := svc.SnapEntriesToLocations(cmd.Context(), consoleProgress(l, "snap"))
		if err != nil {
			return err
		}
		logSummary(l, "Snap sweep finished", summary)
		return nil
	},
}

// enrichReconcileCmd fills missing hierarchy fields on saved locations.
var enrichReconcileCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing hierarchy fields on saved locations",
	Long: `Fills blank city/region/country fields on coordinate-bearing locations
from the geocoding provider. Existing values are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := buildService(nil)
		if err != nil {
			return err
		}

		summary, err := svc.EnrichLocationHierarchy(cmd.Context(), consoleProgress(l, "enrich"))
		if err != nil {
			return err
		}
		logSummary(l, "Enrichment sweep finished", summary)
		return nil
	},
}

// duplicatesCmd reports and optionally merges duplicate locations.
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Report duplicate locations and merge exact duplicates",
	Long: `Prints ranked merge suggestions for likely duplicate locations.

With --merge-exact, locations with identical normalized names and identical
coordinates are merged automatically (oldest record wins). This is
destructive and asks for confirmation unless --yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := buildService(nil)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		suggestions, err := svc.GetMergeSuggestions(ctx)
		if err != nil {
			return err
		}
		if len(suggestions) == 0 {
			l.Info("No duplicate suggestions")
		}
		for _, s := range suggestions {
			fields := []zap.Field{
				zap.String("a", s.A.LocationID),
				zap.String("a_name", s.A.Name),
				zap.String("b", s.B.LocationID),
				zap.String("b_name", s.B.Name),
				zap.Float64("score", s.Score),
				zap.String("reason", s.Reason),
			}
			if s.DistanceMeters != nil {
				fields = append(fields, zap.Float64("distance_m", *s.DistanceMeters))
			}
			l.Info("Duplicate suggestion", fields...)
		}

		mergeExact, _ := cmd.Flags().GetBool("merge-exact")
		if !mergeExact {
			return nil
		}

		if !yesConfirm && !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		merged, err := svc.MergeDuplicateLocations(ctx)
		if err != nil {
			return err
		}
		l.Info("Exact duplicates merged", zap.Int("merged", merged))
		return nil
	},
}

// cleanupCmd deletes locations no entry references.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete saved locations with zero referencing entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := buildService(nil)
		if err != nil {
			return err
		}

		if !yesConfirm && !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		deleted, err := svc.DeleteUnusedLocations(cmd.Context())
		if err != nil {
			return err
		}
		l.Info("Unused locations deleted", zap.Int("deleted", deleted))
		return nil
	},
}

// healthCmd prints the gazetteer health counters.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show outstanding reconciliation work",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := buildService(nil)
		if err != nil {
			return err
		}

		counts, err := svc.GetLocationHealthCounts(cmd.Context())
		if err != nil {
			return err
		}
		l.Info("Location health",
			zap.Int("missing_hierarchy", counts.MissingHierarchy),
			zap.Int("unlinked_with_gps", counts.UnlinkedWithGPS),
			zap.Int("unused_locations", counts.UnusedLocations),
			zap.Int("duplicate_suggestions", counts.DuplicateSuggestions),
			zap.Int("pending_geocode", counts.PendingGeocode),
			zap.Int("entry_derived_places", counts.EntryDerivedPlaces),
		)
		return nil
	},
}

func init() {
	reconcileCmd.AddCommand(geocodeReconcileCmd)
	reconcileCmd.AddCommand(snapReconcileCmd)
	reconcileCmd.AddCommand(enrichReconcileCmd)

	geocodeReconcileCmd.Flags().BoolVar(&retryNoData, "retry-no-data", false, "Also retry entries the provider had no data for")

	duplicatesCmd.Flags().Bool("merge-exact", false, "Merge provably identical locations (oldest wins)")
	duplicatesCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	cleanupCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
	RootCmd.AddCommand(duplicatesCmd)
	RootCmd.AddCommand(cleanupCmd)
	RootCmd.AddCommand(healthCmd)
}

// buildService loads configuration and wires a Service for CLI use. mutate,
// when non-nil, adjusts the loaded config before wiring (flag overrides).
func buildService(mutate func(*config.Config)) (*locations.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if mutate != nil {
		mutate(cfg)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	provider := geocode.NewClient(cfg.Geocode)
	timeout := time.Duration(cfg.Geocode.TimeoutSeconds) * time.Second
	svc := locations.NewService(db, provider, cfg.Locations, timeout, l)
	if err := svc.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return svc, l, nil
}

// consoleProgress logs a checkpoint every 25 items and at the end.
func consoleProgress(l *zap.Logger, job string) reconcile.ProgressFunc {
	return func(current, total int) {
		if current%25 == 0 || current == total {
			l.Info("Sweep progress",
				zap.String("job", job),
				zap.Int("current", current),
				zap.Int("total", total),
			)
		}
	}
}

func logSummary(l *zap.Logger, msg string, s *reconcile.Summary) {
	l.Info(msg,
		zap.Int("processed", s.Processed),
		zap.Int("succeeded", s.Succeeded),
		zap.Int("failed", s.Failed),
		zap.Int("skipped", s.Skipped),
	)
}

// confirmDestructiveAction prompts the user interactively.
func confirmDestructiveAction() bool {
	fmt.Print("This will modify saved locations. Continue? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"journal-locations/feature/locations/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// locationDetailCmd represents the top-level location command
var locationDetailCmd = &cobra.Command{
	Use:   "location [id]",
	Short: "View details of a saved location",
	Long:  `Shows a saved location's fields, hierarchy completeness, and the number of entries referencing it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runLocationDetail(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(locationDetailCmd)
}

func runLocationDetail(ctx context.Context, id string) {
	svc, logg, err := buildService(nil)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	loc, err := svc.GetLocation(ctx, id)
	if err != nil {
		logg.Fatal("Location lookup failed", zap.Error(err))
	}
	if loc == nil {
		fmt.Printf("Location %s not found (or deleted).\n", id)
		os.Exit(1)
	}

	counted, err := svc.GetLocationsWithCounts(ctx)
	if err != nil {
		logg.Fatal("Entry count lookup failed", zap.Error(err))
	}
	entryCount := 0
	for _, c := range counted {
		if c.LocationID == loc.LocationID {
			entryCount = c.EntryCount
			break
		}
	}

	// Pretty Console Output
	fmt.Println("\n--- Location Detail View ---")
	fmt.Printf("ID:             %s\n", loc.LocationID)
	fmt.Printf("Name:           %s\n", loc.Name)
	fmt.Printf("Address:        %s\n", strOrDash(loc.Address))
	fmt.Printf("Neighborhood:   %s\n", strOrDash(loc.Neighborhood))
	fmt.Printf("City:           %s\n", strOrDash(loc.City))
	fmt.Printf("Region:         %s\n", strOrDash(loc.Region))
	fmt.Printf("Country:        %s\n", strOrDash(loc.Country))
	fmt.Println("----------------------------")
	if loc.HasCoordinates() {
		fmt.Printf("Coordinates:    %.5f, %.5f\n", *loc.Latitude, *loc.Longitude)
	} else {
		fmt.Println("Coordinates:    -")
	}
	fmt.Printf("Entries:        %d\n", entryCount)

	status, color := hierarchyStatus(loc)
	resetColor := "\033[0m"
	fmt.Printf("Hierarchy:      %s%s%s\n", color, status, resetColor)
	fmt.Println("----------------------------")
}

func hierarchyStatus(loc *models.Location) (string, string) {
	if loc.MissingHierarchy() {
		return "INCOMPLETE", "\033[33m" // Yellow
	}
	return "COMPLETE", "\033[32m" // Green
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

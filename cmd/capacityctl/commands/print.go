package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

func printCounts(w io.Writer, counts domain.CapacityCounts) {
	fmt.Fprintf(w, "Available: %d  Near capacity: %d  Over capacity: %d  (total %d)\n",
		counts.Available, counts.Near, counts.Over, counts.Total())
}

func printSites(w io.Writer, sites []domain.CapacitySite) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tTYPE\tSTUDENTS\tPER DAY\tPER ROTATION\tUTILIZATION\tSTATUS")
	for i := range sites {
		s := &sites[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			s.Key(),
			s.Name,
			s.TypeLabel(),
			s.CurrentStudentCount,
			s.MaxPerDay,
			optionalInt(s.MaxPerRotation),
			domain.FormatPercentage(s.UtilizationPercentage),
			s.Status().Label,
		)
	}
	return tw.Flush()
}

func printSite(w io.Writer, s *domain.CapacitySite) {
	fmt.Fprintf(w, "Site:             %s (%s)\n", s.Name, s.Key())
	fmt.Fprintf(w, "Type:             %s\n", s.TypeLabel())
	fmt.Fprintf(w, "Max per day:      %d\n", s.MaxPerDay)
	fmt.Fprintf(w, "Max per rotation: %s\n", optionalInt(s.MaxPerRotation))
	fmt.Fprintf(w, "Students:         %d\n", s.CurrentStudentCount)
	fmt.Fprintf(w, "Utilization:      %s (%s)\n", domain.FormatPercentage(s.UtilizationPercentage), s.Status().Label)
	if s.CapacityNotes != nil {
		fmt.Fprintf(w, "Notes:            %s\n", *s.CapacityNotes)
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

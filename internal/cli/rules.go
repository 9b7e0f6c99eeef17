package cli

import (
	"fmt"
	"strings"

	"github.com/example/parkave-bakery/internal/rules"
	"github.com/spf13/cobra"
)

// NewRulesCmd loads and verifies the rule tables, then prints the catalog.
// Running it in CI catches a bad rule edit before it ships.
func NewRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Verify and print the ordering rule tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := rules.NewCatalog(rules.DefaultItems())
			if err != nil {
				return err
			}
			for _, it := range catalog.Items() {
				var sched string
				if it.Kind == rules.Specialty {
					days := make([]string, len(it.AvailableDays))
					for i, d := range it.AvailableDays {
						days[i] = d.String()[:3]
					}
					sched = fmt.Sprintf("specialty %s, cutoff %dd before at %02d:00",
						strings.Join(days, "/"), it.CutoffDaysBefore, it.CutoffHour)
				} else {
					sched = "everyday"
					if !it.SameDayAllowed {
						sched += fmt.Sprintf(", %dd lead time", max(it.MinLeadTimeDays, 1))
					} else if it.SameDayCutoffHour > 0 {
						sched += fmt.Sprintf(", same-day until %02d:00", it.SameDayCutoffHour)
					}
				}
				fmt.Printf("%-14s %-28s %-8s $%d.%02d  limit %d/day  %s\n",
					it.ID, it.Name, it.Category,
					it.PriceCents/100, it.PriceCents%100, it.DailyLimit, sched)
			}
			fmt.Printf("%d items OK\n", catalog.Len())
			return nil
		},
	}
}

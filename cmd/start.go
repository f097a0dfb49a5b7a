package cmd

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bnema/refocus-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(app *app) *cobra.Command {
	var minutes int
	var hours int
	var from string
	var to string
	var sites []string
	var strict bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a blocking session",
		Long:  "Start blocking the stored sites, plus any --site values, for --minutes, --hours or the --from/--to range of today.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			duration, err := resolveDuration(minutes, hours, from, to, app.now())
			if err != nil {
				return err
			}

			targets := sites
			if len(targets) == 0 {
				targets, err = app.sites.List(cmd.Context())
				if err != nil {
					return err
				}
			}

			if err := app.blocking.Start(cmd.Context(), duration, targets, strict); err != nil {
				switch {
				case errors.Is(err, domain.ErrNoSites):
					return fmt.Errorf("add sites first with `rf site add` or --site: %w", err)
				case errors.Is(err, domain.ErrSessionActive):
					return fmt.Errorf("%w; check `rf status`", err)
				default:
					return err
				}
			}

			until, _, err := app.blocking.BlockUntil(cmd.Context())
			if err != nil {
				return err
			}

			mode := "strict"
			if !strict {
				mode = "not strict"
			}
			blocked := app.blocking.Sites()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Blocking %d %s until %s (%s)\n", len(blocked), pluralize(len(blocked), "site", "sites"), until.Local().Format("15:04"), mode)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session length in minutes")
	cmd.Flags().IntVar(&hours, "hours", 0, "Session length in hours")
	cmd.Flags().StringVar(&from, "from", "", "Start of a time range today (HH:MM)")
	cmd.Flags().StringVar(&to, "to", "", "End of a time range today (HH:MM, 24:00 for end of day)")
	cmd.Flags().StringArrayVar(&sites, "site", nil, "Site to add to the blocked list before starting (repeatable)")
	cmd.Flags().BoolVar(&strict, "strict", true, "Refuse to stop before the session expires")
	cmd.MarkFlagsMutuallyExclusive("minutes", "hours", "from")
	cmd.MarkFlagsMutuallyExclusive("minutes", "hours", "to")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

// resolveDuration turns exactly one of the duration flags into a length.
func resolveDuration(minutes, hours int, from, to string, now time.Time) (time.Duration, error) {
	switch {
	case from != "" || to != "":
		return domain.ParseTimeRange(from, to, now)
	case hours != 0:
		return scaleDuration("--hours", hours, time.Hour)
	case minutes != 0:
		return scaleDuration("--minutes", minutes, time.Minute)
	default:
		return 0, fmt.Errorf("select a duration with --minutes, --hours or --from/--to: %w", domain.ErrInvalidDuration)
	}
}

// scaleDuration rejects negative counts and counts whose length would not fit
// in a time.Duration.
func scaleDuration(flag string, n int, unit time.Duration) (time.Duration, error) {
	if n < 0 || int64(n) > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %s %d", domain.ErrInvalidDuration, flag, n)
	}
	return time.Duration(n) * unit, nil
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// internal/scheduler.go
package app

import (
	"context"
	"time"

	"vestflow-engine/internal/util"
)

// StartScheduler launches the daily settlement trigger in a goroutine. It
// fires once per day at the configured UTC hour and relies entirely on the
// run registry gate for idempotency, so overlapping with an external
// scheduler or a manual trigger is harmless.
func (app *Application) StartScheduler(ctx context.Context) {
	go func() {
		for {
			next := nextRunTime(time.Now().UTC(), app.Config.Settlement.DailyRunHourUTC)
			app.Logger.Info("Next scheduled settlement run", "at", next.Format(time.RFC3339))

			select {
			case <-ctx.Done():
				app.Logger.Info("Settlement scheduler stopped.")
				return
			case <-time.After(time.Until(next)):
			}

			summary, err := app.SettlementService.RunSettlement(ctx, false)
			switch {
			case err == nil:
				app.Logger.Info("Scheduled settlement run finished",
					"processed", summary.Processed,
					"skipped", summary.Skipped,
					"failed", len(summary.FailedItems))
			case util.IsError(err, util.ErrAlreadyRun):
				app.Logger.Info("Scheduled settlement run skipped, day already settled")
			default:
				app.Logger.Error("Scheduled settlement run failed", "error", err)
			}
		}
	}()
}

// nextRunTime returns the next occurrence of hourUTC strictly after now.
func nextRunTime(now time.Time, hourUTC int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

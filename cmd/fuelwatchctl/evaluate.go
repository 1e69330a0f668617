package main

import (
	"fmt"
	"time"

	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/reminder"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	flagDueOdometer       int64
	flagDueDate           string
	flagOdometer          int64
	flagThresholdDistance int64
	flagThresholdDays     int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single service reminder without touching the store",
	Example: `  fuelwatchctl evaluate --due-odometer 50000 --odometer 49500
  fuelwatchctl evaluate --due-date 2026-11-01 --threshold-days 30`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().Int64Var(&flagDueOdometer, "due-odometer", -1, "Odometer reading at which service is due")
	evaluateCmd.Flags().StringVar(&flagDueDate, "due-date", "", "Date the service is due (YYYY-MM-DD or RFC3339)")
	evaluateCmd.Flags().Int64Var(&flagOdometer, "odometer", reminder.UnknownOdometer, "Current odometer reading")
	evaluateCmd.Flags().Int64Var(&flagThresholdDistance, "threshold-distance", 1000, "Distance before due that counts as urgent")
	evaluateCmd.Flags().IntVar(&flagThresholdDays, "threshold-days", 15, "Days before due that count as urgent")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	r := &entity.ServiceReminder{ID: "cli", ServiceType: "service"}

	if flagDueOdometer >= 0 {
		due := flagDueOdometer
		r.DueOdometer = &due
	}
	if flagDueDate != "" {
		due, err := parseDate(flagDueDate)
		if err != nil {
			return err
		}
		r.DueDate = &due
	}
	if !r.HasDueCondition() {
		return errors.New("set --due-odometer or --due-date")
	}

	e := reminder.Evaluate(r, flagOdometer, time.Now(), reminder.Thresholds{
		Distance: flagThresholdDistance,
		Days:     flagThresholdDays,
	})

	status := "ok"
	switch {
	case e.IsOverdue:
		status = "overdue"
	case e.IsUrgent:
		status = "urgent"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Status:  %s\n", status)
	fmt.Fprintf(out, "  Detail:  %s\n", reminder.Describe(e))

	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q", s)
	}

	return t, nil
}

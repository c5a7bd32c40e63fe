package util

import (
	"fmt"
	"time"

	"bikeshare-dashboard/aggregator"
	"bikeshare-dashboard/models"

	"github.com/xuri/excelize/v2"
)

const SUMMARY_SHEET = "Summary"

var viewHeaders = []string{"group_key", "ride_type", "count"}

// ExportDashboardXLSX writes a workbook with a summary sheet and one sheet per view.
func ExportDashboardXLSX(d *aggregator.Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetDocProps(&excelize.DocProperties{
		Title:       DASHBOARD_PAGE_TITLE,
		Subject:     "Bike-share ride counts",
		Creator:     "bikeshare-dashboard",
		Description: fmt.Sprintf("Ride counts from %s to %s", d.Range.Start.Format(models.DateLayout), d.Range.End.Format(models.DateLayout)),
		Created:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	if err := writeSummarySheet(f, d); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	for _, name := range aggregator.ViewNames {
		rows, err := dashboardViewRows(d, name)
		if err != nil {
			return nil, err
		}
		if err := writeViewSheet(f, name, rows); err != nil {
			return nil, fmt.Errorf("failed to create %s sheet: %w", name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, d *aggregator.Dashboard) error {
	if _, err := f.NewSheet(SUMMARY_SHEET); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Start", d.Range.Start.Format(models.DateLayout)},
		{"End", d.Range.End.Format(models.DateLayout)},
		{"Records", d.Summary.Records},
		{"Total Rides", d.Summary.TotalRides},
		{"Total Casual Rides", d.Summary.CasualRides},
		{"Total Registered Rides", d.Summary.RegisteredRides},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SUMMARY_SHEET, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SUMMARY_SHEET, "A", "A", 24)
}

func writeViewSheet(f *excelize.File, name string, rows []aggregator.Row[string]) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &viewHeaders); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.GroupKey, string(row.RideType), row.Count}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// dashboardViewRows reads a view already computed on d as string-keyed rows.
func dashboardViewRows(d *aggregator.Dashboard, name string) ([]aggregator.Row[string], error) {
	var v aggregator.AggregatedView[int]
	switch name {
	case aggregator.ViewMonthly:
		return d.Monthly.Rows, nil
	case aggregator.ViewWeekday:
		v = d.Weekday
	case aggregator.ViewHourly:
		v = d.Hourly
	case aggregator.ViewSeasonal:
		v = d.Seasonal
	case aggregator.ViewWeather:
		v = d.Weather
	default:
		return nil, fmt.Errorf("%w: %q", aggregator.ErrUnknownView, name)
	}
	return aggregator.StringKeys(v), nil
}

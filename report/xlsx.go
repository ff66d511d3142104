package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Rogov-KS/rwlist/workload"
)

const (
	runsSheet    = "runs"
	summarySheet = "summary"
)

var runsHeader = []string{
	"run_id", "threads", "total_ops", "search_percent", "insert_percent",
	"initial", "final", "member", "insert", "delete", "not_inserted", "not_deleted",
	"dropped", "elapsed_seconds",
}

// WriteXLSX stores one row per run plus an elapsed-time summary in path.
func WriteXLSX(path string, reps []workload.Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", runsSheet); err != nil {
		return err
	}
	if err := setRow(f, runsSheet, 1, toAny(runsHeader)); err != nil {
		return err
	}
	for i, rep := range reps {
		c := rep.Counters
		row := []any{
			rep.RunID, rep.Config.Threads, rep.Config.TotalOps,
			rep.Config.SearchPercent, rep.Config.InsertPercent,
			rep.Initial, rep.Final, c.Member, c.Insert, c.Delete, c.NotInserted, c.NotDeleted,
			rep.Dropped, rep.Elapsed.Seconds(),
		}
		if err := setRow(f, runsSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	s := Summarize(reps)
	for i, kv := range [][]any{
		{"runs", s.Runs},
		{"mean_seconds", s.Mean.Seconds()},
		{"min_seconds", s.Min.Seconds()},
		{"max_seconds", s.Max.Seconds()},
	} {
		if err := setRow(f, summarySheet, i+1, kv); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

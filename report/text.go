// Package report renders workload reports for humans and spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/Rogov-KS/rwlist/workload"
)

// WriteText prints rep in the classic pthread benchmark layout.
func WriteText(w io.Writer, rep workload.Report) error {
	c := rep.Counters
	_, err := fmt.Fprintf(w,
		"Inserted %d keys in empty list\n"+
			"num of nodes %d\n"+
			"The numbers of insertion is %d and of deletes %d\n"+
			"Elapsed time = %e seconds\n"+
			"Total ops = %d\n"+
			"member ops = %d\n"+
			"insert ops = %d\n"+
			"delete ops = %d\n",
		rep.Initial,
		rep.Final,
		c.Inserted(), c.Deleted(),
		rep.Elapsed.Seconds(),
		rep.Config.TotalOps,
		c.Member,
		c.Insert,
		c.Delete,
	)
	if err != nil {
		return err
	}
	if rep.Dropped > 0 {
		if _, err := fmt.Fprintf(w, "dropped ops = %d\n", rep.Dropped); err != nil {
			return err
		}
	}
	if rep.Keys != nil {
		if _, err := fmt.Fprintf(w, "After threads terminate, list = \n%v\n", rep.Keys); err != nil {
			return err
		}
	}
	return nil
}

// Summary aggregates the elapsed times of repeated runs.
type Summary struct {
	Runs int
	Mean time.Duration
	Min  time.Duration
	Max  time.Duration
}

func Summarize(reps []workload.Report) Summary {
	if len(reps) == 0 {
		return Summary{}
	}
	s := Summary{Runs: len(reps), Min: reps[0].Elapsed, Max: reps[0].Elapsed}
	var total time.Duration
	for _, rep := range reps {
		total += rep.Elapsed
		s.Min = min(s.Min, rep.Elapsed)
		s.Max = max(s.Max, rep.Elapsed)
	}
	s.Mean = total / time.Duration(len(reps))
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("runs = %d, mean = %e s, min = %e s, max = %e s",
		s.Runs, s.Mean.Seconds(), s.Min.Seconds(), s.Max.Seconds())
}

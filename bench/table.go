package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable prints r as an aligned text table.
func WriteTable(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "run %s on %s (%s/%s, isa=%s, block=%d, unroll=%d)\n",
		r.ID, r.Host, r.GOOS, r.GOARCH, r.ISA, r.BlockWidth, r.UnrollFactor)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "dataset\tstrategy\tlength\tindex\tns/op\telem/ns\tstatus\t")
	for _, res := range r.Results {
		status := "ok"
		switch {
		case res.Skipped:
			status = "skipped: " + res.SkipReason
		case res.Failed():
			status = "FAIL: " + res.Err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f\t%.3f\t%s\t\n",
			res.Dataset, res.Strategy, res.Length, res.Got, res.NsPerOp, res.ElementsPerNs, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d results, %d failures, %s\n", len(r.Results), r.Failures, r.Elapsed)
	return err
}

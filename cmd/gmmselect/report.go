package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aclements/gmmselect/selection"
	"github.com/aclements/gmmselect/stats"
)

// printSummary describes the distribution of data.
func printSummary(w io.Writer, data []float64) {
	s := stats.Sample{Xs: data}.Copy().Sort()

	fmt.Fprintf(w, "N %d  mean %.6g  std dev %.6g  distinct %d\n", len(s.Xs), s.Mean(), s.StdDev(), s.Distinct())
	labels := map[int]string{0: "min", 50: "median", 100: "max"}
	for _, p := range []int{0, 25, 50, 75, 100} {
		label, ok := labels[p]
		if !ok {
			label = fmt.Sprintf("%d%%ile", p)
		}
		fmt.Fprintf(w, "%8s %.6g\n", label, s.Quantile(float64(p)/100))
	}
	fmt.Fprintln(w)
}

func printTrials(w io.Writer, trials []selection.Trial) {
	for _, t := range trials {
		if t.Err != nil {
			fmt.Fprintf(w, "K=%d, fit failed: %v\n", t.K, t.Err)
			continue
		}
		fmt.Fprintf(w, "K=%d, Log-Likelihood=%.2f, AIC=%.2f\n", t.K, t.LogLikelihood, t.AIC)
	}
}

func printBest(w io.Writer, best *selection.FitResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Chosen number of components: %d (AIC=%.2f)\n", best.K, best.AIC)

	m := best.Mixture
	weights, means, sigmas := m.Weights(), m.Means(), m.Sigmas()
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "component\tweight\tmean\tstd dev")
	for j := range weights {
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\n", j+1, weights[j], means[j], sigmas[j])
	}
	tw.Flush()
}

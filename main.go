package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satlab/dpll/dpll"
)

var (
	flat    bool
	jsonOut bool
	verbose bool
	timeout time.Duration
)

// solution is the record printed in -json mode: the instance name, the solve
// time in seconds and the model as "<var> <true|false>" pairs, or "--" when
// the instance is unsatisfiable.
type solution struct {
	Instance string
	Time     string
	Result   string
}

func main() {
	cmd := &cobra.Command{
		Use:          "dpll [flags] <file.cnf>",
		Short:        "decide the satisfiability of a DIMACS CNF file with the DPLL procedure",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "use the re-simplifying search state instead of the indexed one")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print a JSON record instead of DIMACS output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace the search on stderr")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this much time (0 means never)")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(path string) error {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %q", path)
	}
	defer f.Close()
	formula, err := dpll.ParseCNF(f)
	if err != nil {
		return errors.Wrapf(err, "could not parse %q", path)
	}
	log.WithFields(logrus.Fields{
		"vars":    formula.NbVars,
		"clauses": len(formula.Clauses),
	}).Debugf("solving %s", path)

	var s *dpll.Solver
	if flat {
		s = dpll.NewFlat(formula)
	} else {
		s = dpll.New(formula)
	}
	s.SetLogger(log)
	if timeout > 0 {
		t := time.AfterFunc(timeout, s.Stop)
		defer t.Stop()
	}

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	if jsonOut {
		return printJSON(path, s, status, elapsed)
	}
	s.OutputModel(os.Stdout)
	return nil
}

func printJSON(path string, s *dpll.Solver, status dpll.Status, elapsed time.Duration) error {
	result := "--"
	if status == dpll.Sat {
		var b strings.Builder
		for i, val := range s.Model() {
			fmt.Fprintf(&b, "%d %t ", i+1, val)
		}
		result = b.String()
	}
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(solution{
		Instance: filepath.Base(path),
		Time:     fmt.Sprintf("%.2f", elapsed.Seconds()),
		Result:   result,
	})
}

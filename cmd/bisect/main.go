package main

import (
	"errors"
	"fmt"
	"os"

	"idz2_bisect/internal/report"
	"idz2_bisect/internal/solver"
)

// фиксированный сценарий: f(x) = x^3 + 4x на [-2, 2], единственный корень x = 0
const (
	lo      = -2.0
	hi      = 2.0
	tol     = 1e-6
	maxIter = 50
)

func cubic(x float64) float64 {
	return x*x*x + 4*x
}

func run(out *os.File) error {
	f := solver.Closure(cubic)

	fmt.Fprintln(out, "Метод бисекции для f(x) = x³ + 4x = 0")
	fmt.Fprintf(out, "f(%g) = %.2f, f(%g) = %.2f — знак меняется, корень на [%g, %g]\n\n",
		lo, cubic(lo), hi, cubic(hi), lo, hi)

	res, err := solver.Bisect(f, lo, hi, tol, maxIter, nil)
	if err != nil {
		return err
	}

	report.WriteTable(out, res.Iters)
	fmt.Fprintln(out)
	report.WriteSummary(out, res, f)
	fmt.Fprintln(out)
	report.WriteFunctionPlot(out, f, lo, hi, res)
	fmt.Fprintln(out)
	report.WriteErrorPlot(out, res.Iters)

	return nil
}

func main() {
	if err := run(os.Stdout); err != nil {
		var be *solver.BracketError
		if errors.As(err, &be) {
			fmt.Fprintln(os.Stderr, "Ошибка:", be)
		} else {
			fmt.Fprintln(os.Stderr, "Непредвиденная ошибка:", err)
		}
		os.Exit(1)
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"idz2_bisect/internal/solver"
)

// ширины колонок таблицы итераций
const (
	colIter = 10
	colF    = 12
	colFMid = 15
)

// WriteTable печатает таблицу итераций: по строке на запись, значения с 8
// знаками после запятой, колонки выровнены влево.
func WriteTable(w io.Writer, iters []solver.Iter) {
	fmt.Fprintf(w, "%-*s | %-*s | %-*s | %-*s | %-*s | %-*s\n",
		colIter, "Iteration",
		colF, "a",
		colF, "b",
		colF, "midpoint",
		colFMid, "f(midpoint)",
		colF, "Error")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, it := range iters {
		fmt.Fprintf(w, "%-*d | %-*.8f | %-*.8f | %-*.8f | %-*.8f | %-*.8f\n",
			colIter, it.K,
			colF, it.A,
			colF, it.B,
			colF, it.XMid,
			colFMid, it.FMid,
			colF, it.Err)
	}
}

// WriteSummary печатает итог прогона: корень, значение функции в нём,
// число итераций, финальную ошибку и причину остановки.
func WriteSummary(w io.Writer, res solver.Result, f solver.Func) {
	if len(res.Iters) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "ИТОГ")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	froot, err := f.Eval(res.Root)
	first := res.Iters[0]
	last := res.Iters[len(res.Iters)-1]

	fmt.Fprintf(w, "Начальный отрезок: [%g, %g]\n", first.A, first.B)
	fmt.Fprintf(w, "Найденный корень: x = %.8f\n", res.Root)
	if err == nil {
		fmt.Fprintf(w, "f(корень) = %.2e\n", froot)
	}
	fmt.Fprintf(w, "Число итераций: %d\n", len(res.Iters))
	fmt.Fprintf(w, "Финальная ошибка: %.2e\n", last.Err)

	switch res.Reason {
	case solver.StopExactRoot:
		fmt.Fprintln(w, "Остановка: найден точный корень")
	case solver.StopConverged:
		fmt.Fprintln(w, "Остановка: достигнута заданная точность")
	case solver.StopMaxIter:
		fmt.Fprintln(w, "Остановка: исчерпан лимит итераций, точность не достигнута")
	}
}

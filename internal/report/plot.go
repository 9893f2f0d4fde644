package report

import (
	"fmt"
	"io"
	"math"

	"idz2_bisect/internal/solver"
)

// размеры текстовых панелей
const (
	plotCols = 72
	plotRows = 20
	errRows  = 14
)

// SampleCurve считает значения функции на равномерной сетке из n точек;
// невычислимые точки помечаются NaN
func SampleCurve(f solver.Func, lo, hi float64, n int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	h := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*h
		y, err := f.Eval(x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			y = math.NaN()
		}
		xs[i], ys[i] = x, y
	}
	return xs, ys
}

// WriteFunctionPlot печатает график функции на [lo, hi] с отметками:
// '*' — кривая, '-' — ось y=0, '|' — найденный корень, ':' — начальный отрезок.
func WriteFunctionPlot(w io.Writer, f solver.Func, lo, hi float64, res solver.Result) {
	_, ys := SampleCurve(f, lo, hi, plotCols)

	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		if math.IsNaN(y) {
			continue
		}
		ymin = math.Min(ymin, y)
		ymax = math.Max(ymax, y)
	}
	if math.IsInf(ymin, 1) || ymin == ymax {
		fmt.Fprintln(w, "график: нет вычислимых точек")
		return
	}

	grid := make([][]byte, plotRows)
	for r := range grid {
		grid[r] = make([]byte, plotCols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	// строка сетки для значения y; 0 — верх
	rowOf := func(y float64) int {
		t := (ymax - y) / (ymax - ymin)
		r := int(math.Round(t * float64(plotRows-1)))
		if r < 0 {
			r = 0
		}
		if r > plotRows-1 {
			r = plotRows - 1
		}
		return r
	}
	colOf := func(x float64) int {
		t := (x - lo) / (hi - lo)
		c := int(math.Round(t * float64(plotCols-1)))
		if c < 0 {
			c = 0
		}
		if c > plotCols-1 {
			c = plotCols - 1
		}
		return c
	}

	// ось y=0
	if ymin <= 0 && 0 <= ymax {
		r := rowOf(0)
		for c := 0; c < plotCols; c++ {
			grid[r][c] = '-'
		}
	}

	// вертикальные отметки: начальный отрезок и корень
	if len(res.Iters) > 0 {
		for _, x := range []float64{res.Iters[0].A, res.Iters[0].B} {
			c := colOf(x)
			for r := 0; r < plotRows; r++ {
				grid[r][c] = ':'
			}
		}
	}
	rootCol := colOf(res.Root)
	for r := 0; r < plotRows; r++ {
		grid[r][rootCol] = '|'
	}

	// сама кривая поверх отметок
	for i, y := range ys {
		if math.IsNaN(y) {
			continue
		}
		grid[rowOf(y)][i] = '*'
	}

	fmt.Fprintf(w, "f(x) на [%g, %g], корень ≈ %.6f ('|'), начальный отрезок ':'\n", lo, hi, res.Root)
	fmt.Fprintf(w, "%12.4g +\n", ymax)
	for r := 0; r < plotRows; r++ {
		fmt.Fprintf(w, "%12s |%s\n", "", string(grid[r]))
	}
	fmt.Fprintf(w, "%12.4g +\n", ymin)
	fmt.Fprintf(w, "%13s%-8.4g%*s%8.4g\n", "", lo, plotCols-16, "", hi)
}

// WriteErrorPlot печатает сходимость: ошибку по итерациям в лог. масштабе,
// 'o' — значение на итерации.
func WriteErrorPlot(w io.Writer, iters []solver.Iter) {
	if len(iters) == 0 {
		return
	}

	logs := make([]float64, len(iters))
	lmin, lmax := math.Inf(1), math.Inf(-1)
	for i, it := range iters {
		l := math.Log10(it.Err)
		if math.IsInf(l, 0) || math.IsNaN(l) {
			l = -16 // нулевая ширина не встречается, но на всякий случай
		}
		logs[i] = l
		lmin = math.Min(lmin, l)
		lmax = math.Max(lmax, l)
	}
	if lmin == lmax {
		lmin = lmax - 1
	}

	grid := make([][]byte, errRows)
	for r := range grid {
		grid[r] = make([]byte, len(iters))
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}
	for i, l := range logs {
		t := (lmax - l) / (lmax - lmin)
		r := int(math.Round(t * float64(errRows-1)))
		grid[r][i] = 'o'
	}

	fmt.Fprintln(w, "Сходимость: ошибка по итерациям (лог. масштаб)")
	fmt.Fprintf(w, "%10s +\n", fmt.Sprintf("1e%+03.0f", lmax))
	for r := 0; r < errRows; r++ {
		fmt.Fprintf(w, "%10s |%s\n", "", string(grid[r]))
	}
	fmt.Fprintf(w, "%10s +%s\n", fmt.Sprintf("1e%+03.0f", lmin), "")
	if len(iters) > 1 {
		fmt.Fprintf(w, "%11s0%*d\n", "", len(iters)-1, len(iters)-1)
	} else {
		fmt.Fprintf(w, "%11s0\n", "")
	}
}

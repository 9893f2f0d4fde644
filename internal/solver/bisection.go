package solver

import (
	"errors"
	"fmt"
	"math"
)

// Iter — одна итерация метода бисекции.
// A и B — границы отрезка на входе в итерацию, Err — его ширина до деления.
type Iter struct {
	K    int     `json:"k"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
	XMid float64 `json:"xmid"`
	FMid float64 `json:"fmid"`
	Err  float64 `json:"err"`
}

// StopReason — причина остановки метода.
type StopReason string

const (
	// StopExactRoot — |f(mid)| < exactRootEps, середина считается точным корнем.
	StopExactRoot StopReason = "exact_root"
	// StopConverged — ширина отрезка стала меньше заданной точности.
	StopConverged StopReason = "converged"
	// StopMaxIter — исчерпан лимит итераций; не ошибка, решает вызывающий.
	StopMaxIter StopReason = "max_iter"
)

// Result — итог работы метода: оценка корня (середина последней итерации),
// полная история итераций и причина остановки.
type Result struct {
	Root   float64    `json:"root"`
	Iters  []Iter     `json:"iters"`
	Reason StopReason `json:"reason"`
}

// порог точного корня; абсолютный, от eps не зависит
const exactRootEps = 1e-15

// ErrStopped — специальная ошибка для принудительной остановки из onIter.
var ErrStopped = errors.New("bisect: stopped by callback")

// BracketError — на отрезке [A, B] нет смены знака: f(A)*f(B) >= 0.
// Возвращается один раз, до первой итерации.
type BracketError struct {
	A, B   float64
	FA, FB float64
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("bisect: функция должна менять знак на концах отрезка: f(%g) = %g, f(%g) = %g",
		e.A, e.FA, e.B, e.FB)
}

// Bisect — метод бисекции для f(x) = 0 на отрезке [a, b].
// onIter вызывается после записи каждой итерации; если вернёт ErrStopped —
// алгоритм прерывается. Ошибки вычисления f пробрасываются без обёртки.
// Исчерпание maxIter — штатное завершение (Reason = StopMaxIter), не ошибка.
func Bisect(
	f Func,
	a, b, eps float64,
	maxIter int,
	onIter func(Iter) error,
) (Result, error) {
	fa, err := f.Eval(a)
	if err != nil {
		return Result{}, err
	}
	fb, err := f.Eval(b)
	if err != nil {
		return Result{}, err
	}
	if fa*fb >= 0 {
		return Result{}, &BracketError{A: a, B: b, FA: fa, FB: fb}
	}

	res := Result{Reason: StopMaxIter}

	for k := 0; k < maxIter; k++ {
		mid := (a + b) / 2
		fmid, err := f.Eval(mid)
		if err != nil {
			return res, err
		}
		width := math.Abs(b - a)

		it := Iter{K: k, A: a, B: b, XMid: mid, FMid: fmid, Err: width}
		res.Iters = append(res.Iters, it)
		res.Root = mid

		if onIter != nil {
			if err := onIter(it); err != nil {
				if errors.Is(err, ErrStopped) {
					return res, ErrStopped
				}
				return res, err
			}
		}

		if math.Abs(fmid) < exactRootEps {
			res.Reason = StopExactRoot
			break
		}
		if width < eps {
			res.Reason = StopConverged
			break
		}

		// при fa*fmid == 0 сдвигается a, не b
		if fa*fmid < 0 {
			b = mid
		} else {
			a = mid
			fa = fmid
		}
	}

	return res, nil
}

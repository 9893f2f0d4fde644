package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"idz2_bisect/internal/solver"
)

// TestEvalFuncCubic: выражение кубической функции вычисляется как нативное замыкание.
func TestEvalFuncCubic(t *testing.T) {
	f, err := solver.NewEvalFunc("x**3 + 4*x")
	require.NoError(t, err)

	for _, x := range []float64{-2, -0.5, 0, 1, 3} {
		got, err := f.Eval(x)
		require.NoError(t, err)
		require.Equal(t, cubic(x), got, "x = %g", x)
	}
}

// TestEvalFuncHelpers: встроенные математические функции доступны в выражении.
func TestEvalFuncHelpers(t *testing.T) {
	f, err := solver.NewEvalFunc("pow(x, 2) - abs(x)")
	require.NoError(t, err)

	got, err := f.Eval(-3)
	require.NoError(t, err)
	require.Equal(t, 6.0, got)

	g, err := solver.NewEvalFunc("sin(x)")
	require.NoError(t, err)
	got, err = g.Eval(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)
}

// TestEvalFuncCommaDecimal: запятая в десятичной записи нормализуется в точку.
func TestEvalFuncCommaDecimal(t *testing.T) {
	f, err := solver.NewEvalFunc("x - 0,5")
	require.NoError(t, err)

	got, err := f.Eval(2)
	require.NoError(t, err)
	require.Equal(t, 1.5, got)
}

// TestEvalFuncParseError: синтаксическая ошибка выражения обнаруживается при создании.
func TestEvalFuncParseError(t *testing.T) {
	_, err := solver.NewEvalFunc("x +* 2")
	require.Error(t, err)
}

// TestBisectWithExpression: метод работает поверх функции из строки так же,
// как поверх нативного замыкания.
func TestBisectWithExpression(t *testing.T) {
	f, err := solver.NewEvalFunc("x**3 + 4*x")
	require.NoError(t, err)

	res, err := solver.Bisect(f, -2, 3, 1e-6, 50, nil)
	require.NoError(t, err)
	require.Equal(t, solver.StopConverged, res.Reason)
	require.InDelta(t, 0.0, res.Root, 1e-6)

	native, err := solver.Bisect(solver.Closure(cubic), -2, 3, 1e-6, 50, nil)
	require.NoError(t, err)
	require.Equal(t, native.Iters, res.Iters)
}

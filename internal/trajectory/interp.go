package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Interp вычисляет кусочно-линейную интерполяцию значений arr,
// заданных на отсортированных метках t, в точках tInter.
// Вне диапазона [t[0], t[n-1]] значения прижимаются к граничным,
// одна известная точка дает константу.
func Interp(t, arr, tInter []float64) ([]float64, error) {
	if len(t) != len(arr) {
		return nil, fmt.Errorf("%w: t=%d, arr=%d", ErrShapeMismatch, len(t), len(arr))
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: нет известных точек для интерполяции", ErrDegenerate)
	}

	out := make([]float64, len(tInter))
	if len(t) == 1 {
		for i := range out {
			out[i] = arr[0]
		}
		return out, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(t, arr); err != nil {
		return nil, fmt.Errorf("ошибка построения интерполятора: %w", err)
	}

	lo, hi := t[0], t[len(t)-1]
	for i, ti := range tInter {
		if ti < lo {
			ti = lo
		}
		if ti > hi {
			ti = hi
		}
		out[i] = pl.Predict(ti)
	}
	return out, nil
}

// Synchronize интерполирует координаты предсказанной траектории
// на временные метки эталонной. Эталон возвращается без изменений,
// предсказание получает метки и длину эталона.
func Synchronize(truth, pred Trajectory) (Trajectory, Trajectory, error) {
	if err := truth.Validate(); err != nil {
		return Trajectory{}, Trajectory{}, fmt.Errorf("эталонная траектория: %w", err)
	}
	if err := pred.Validate(); err != nil {
		return Trajectory{}, Trajectory{}, fmt.Errorf("предсказанная траектория: %w", err)
	}

	x, err := Interp(pred.Tmsp, pred.X, truth.Tmsp)
	if err != nil {
		return Trajectory{}, Trajectory{}, err
	}
	y, err := Interp(pred.Tmsp, pred.Y, truth.Tmsp)
	if err != nil {
		return Trajectory{}, Trajectory{}, err
	}

	synced := Trajectory{
		Tmsp: append([]float64(nil), truth.Tmsp...),
		X:    x,
		Y:    y,
	}
	return truth, synced, nil
}

package trajectory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Имена метрик в итоговом отчете
const (
	MetricRMSE = "rmse"
	MetricMIE  = "mie"
)

// Straighten выпрямляет эталонную траекторию и считает отклонения.
// Для каждой точки возвращает накопленную длину пути вдоль эталона
// (начиная с 0) и евклидово расстояние до предсказанной точки.
// Траектории должны быть предварительно синхронизированы.
func Straighten(truth, pred Trajectory) (arc, dist []float64, err error) {
	if truth.Len() != pred.Len() {
		return nil, nil, fmt.Errorf("%w: эталон %d точек, предсказание %d точек",
			ErrShapeMismatch, truth.Len(), pred.Len())
	}

	n := truth.Len()
	arc = make([]float64, n)
	dist = make([]float64, n)
	for i := 0; i < n; i++ {
		dist[i] = math.Hypot(pred.X[i]-truth.X[i], pred.Y[i]-truth.Y[i])
		if i > 0 {
			arc[i] = arc[i-1] + math.Hypot(truth.X[i]-truth.X[i-1], truth.Y[i]-truth.Y[i-1])
		}
	}
	return arc, dist, nil
}

// RMSE вычисляет корень из среднего квадрата попарных расстояний
// между траекториями после синхронизации. Лучшее значение 0.
func RMSE(truth, pred Trajectory) (float64, error) {
	truth, pred, err := Synchronize(truth, pred)
	if err != nil {
		return 0, err
	}
	if truth.Len() < 2 {
		return 0, fmt.Errorf("%w: эталон содержит %d точек, метрика не определена",
			ErrDegenerate, truth.Len())
	}

	_, dist, err := Straighten(truth, pred)
	if err != nil {
		return 0, err
	}

	sq := make([]float64, len(dist))
	for i, d := range dist {
		sq[i] = d * d
	}
	return math.Sqrt(stat.Mean(sq, nil)), nil
}

// MIE вычисляет средний интегральный разрыв: интеграл попарного
// расстояния по выпрямленному пути эталона, нормированный на общую
// длину пути. Лучшее значение 0.
func MIE(truth, pred Trajectory) (float64, error) {
	truth, pred, err := Synchronize(truth, pred)
	if err != nil {
		return 0, err
	}
	if truth.Len() < 2 {
		return 0, fmt.Errorf("%w: эталон содержит %d точек, метрика не определена",
			ErrDegenerate, truth.Len())
	}

	arc, dist, err := Straighten(truth, pred)
	if err != nil {
		return 0, err
	}

	total := arc[len(arc)-1]
	if total == 0 {
		return 0, fmt.Errorf("%w: нулевая длина эталонного пути, метрика не определена", ErrDegenerate)
	}
	return integrate.Trapezoidal(arc, dist) / total, nil
}

// Scores возвращает набор метрик качества предсказанной траектории
func Scores(truth, pred Trajectory) (map[string]float64, error) {
	rmse, err := RMSE(truth, pred)
	if err != nil {
		return nil, err
	}
	mie, err := MIE(truth, pred)
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		MetricRMSE: rmse,
		MetricMIE:  mie,
	}, nil
}

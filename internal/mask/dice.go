package mask

import (
	"errors"
	"fmt"
)

// EPS защита от деления на ноль при сравнении пустых масок
const EPS = 1e-10

// ErrShapeMismatch формы масок не совпадают
var ErrShapeMismatch = errors.New("формы масок не совпадают")

// Dice вычисляет dice score двух бинарных масок: 2*|A∩B| / (|A|+|B|).
// Возвращает значение от 0 до 1, где 1 - полное совпадение.
// Любое ненулевое значение пикселя считается объектом.
func Dice(truth, pred Mask) (float64, error) {
	if !truth.SameShape(pred) {
		return 0, fmt.Errorf("%w: %dx%d и %dx%d",
			ErrShapeMismatch, truth.Height, truth.Width, pred.Height, pred.Width)
	}

	intersection := 0
	total := 0
	for i := range truth.Pix {
		t := truth.Pix[i] != 0
		p := pred.Pix[i] != 0
		if t && p {
			intersection++
		}
		if t {
			total++
		}
		if p {
			total++
		}
	}

	return 2.0 * float64(intersection) / (float64(total) + EPS), nil
}

// MeanDice вычисляет средний dice score по парным спискам масок
func MeanDice(truth, pred []Mask) (float64, error) {
	if len(truth) != len(pred) {
		return 0, fmt.Errorf("списки масок имеют разную длину: %d и %d", len(truth), len(pred))
	}
	if len(truth) == 0 {
		return 0, fmt.Errorf("пустые списки масок")
	}

	sum := 0.0
	for i := range truth {
		score, err := Dice(truth[i], pred[i])
		if err != nil {
			return 0, fmt.Errorf("пара %d: %w", i, err)
		}
		sum += score
	}

	return sum / float64(len(truth)), nil
}

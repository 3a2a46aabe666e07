package trajectory

import (
	"errors"
	"fmt"
)

// Имена полей табличных записей траектории по умолчанию
const (
	DefaultTmspField = "tmsp"
	DefaultXField    = "x"
	DefaultYField    = "y"
)

// Ошибки траекторных вычислений
var (
	ErrShapeMismatch = errors.New("длины траекторий не совпадают")
	ErrDegenerate    = errors.New("вырожденная траектория")
)

// Fields задает имена полей записей: временная метка и две координаты
type Fields struct {
	Tmsp string `json:"tmsp"`
	X    string `json:"x"`
	Y    string `json:"y"`
}

// DefaultFields возвращает имена полей по умолчанию (tmsp, x, y)
func DefaultFields() Fields {
	return Fields{Tmsp: DefaultTmspField, X: DefaultXField, Y: DefaultYField}
}

// normalize подставляет имена по умолчанию вместо пустых
func (f Fields) normalize() Fields {
	if f.Tmsp == "" {
		f.Tmsp = DefaultTmspField
	}
	if f.X == "" {
		f.X = DefaultXField
	}
	if f.Y == "" {
		f.Y = DefaultYField
	}
	return f
}

// Trajectory хранит траекторию по колонкам: временные метки и координаты.
// Временные метки строго возрастают.
type Trajectory struct {
	Tmsp []float64
	X    []float64
	Y    []float64
}

// Len возвращает число точек траектории
func (t Trajectory) Len() int {
	return len(t.Tmsp)
}

// Validate проверяет согласованность колонок и монотонность меток
func (t Trajectory) Validate() error {
	if len(t.X) != len(t.Tmsp) || len(t.Y) != len(t.Tmsp) {
		return fmt.Errorf("%w: tmsp=%d, x=%d, y=%d", ErrShapeMismatch, len(t.Tmsp), len(t.X), len(t.Y))
	}
	if len(t.Tmsp) == 0 {
		return fmt.Errorf("%w: пустая траектория", ErrDegenerate)
	}
	for i := 1; i < len(t.Tmsp); i++ {
		if t.Tmsp[i] <= t.Tmsp[i-1] {
			return fmt.Errorf("временные метки должны строго возрастать: tmsp[%d]=%v, tmsp[%d]=%v",
				i-1, t.Tmsp[i-1], i, t.Tmsp[i])
		}
	}
	return nil
}

// FromRecords собирает траекторию из табличных записей по именам полей
func FromRecords(records []map[string]float64, fields Fields) (Trajectory, error) {
	fields = fields.normalize()

	t := Trajectory{
		Tmsp: make([]float64, len(records)),
		X:    make([]float64, len(records)),
		Y:    make([]float64, len(records)),
	}
	for i, rec := range records {
		for _, name := range []string{fields.Tmsp, fields.X, fields.Y} {
			if _, ok := rec[name]; !ok {
				return Trajectory{}, fmt.Errorf("запись %d не содержит поля %q", i, name)
			}
		}
		t.Tmsp[i] = rec[fields.Tmsp]
		t.X[i] = rec[fields.X]
		t.Y[i] = rec[fields.Y]
	}

	if err := t.Validate(); err != nil {
		return Trajectory{}, err
	}
	return t, nil
}

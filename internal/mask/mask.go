package mask

import "fmt"

// Размеры маски по умолчанию (формат соревнования)
const (
	DefaultHeight = 512
	DefaultWidth  = 512
)

// Foreground значение пикселя объекта в декодированной маске
const Foreground uint8 = 255

// Mask представляет бинарную маску: 0 - фон, ненулевое значение - объект.
// Пиксели хранятся в порядке row-major.
type Mask struct {
	Height int
	Width  int
	Pix    []uint8
}

// New создает пустую маску заданной формы
func New(height, width int) (Mask, error) {
	if height <= 0 || width <= 0 {
		return Mask{}, fmt.Errorf("недопустимая форма маски: %dx%d", height, width)
	}
	return Mask{
		Height: height,
		Width:  width,
		Pix:    make([]uint8, height*width),
	}, nil
}

// FromRows создает маску из строк пикселей
func FromRows(rows [][]uint8) (Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Mask{}, fmt.Errorf("пустая маска")
	}
	width := len(rows[0])
	m, err := New(len(rows), width)
	if err != nil {
		return Mask{}, err
	}
	for y, row := range rows {
		if len(row) != width {
			return Mask{}, fmt.Errorf("строка %d имеет длину %d, ожидалось %d", y, len(row), width)
		}
		copy(m.Pix[y*width:(y+1)*width], row)
	}
	return m, nil
}

// At возвращает значение пикселя
func (m Mask) At(y, x int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Set устанавливает значение пикселя
func (m Mask) Set(y, x int, v uint8) {
	m.Pix[y*m.Width+x] = v
}

// Rows возвращает маску как строки пикселей
func (m Mask) Rows() [][]uint8 {
	rows := make([][]uint8, m.Height)
	for y := 0; y < m.Height; y++ {
		rows[y] = m.Pix[y*m.Width : (y+1)*m.Width]
	}
	return rows
}

// SameShape проверяет совпадение формы двух масок
func (m Mask) SameShape(other Mask) bool {
	return m.Height == other.Height && m.Width == other.Width
}

// Equal сравнивает маски попиксельно
func (m Mask) Equal(other Mask) bool {
	if !m.SameShape(other) {
		return false
	}
	for i, p := range m.Pix {
		if p != other.Pix[i] {
			return false
		}
	}
	return true
}

package mask

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse ошибка разбора RLE строки
var ErrParse = errors.New("некорректная RLE строка")

// EncodeRLE кодирует маску в RLE строку.
// Формат: пары (начало, длина) через пробел, старт 1-индексированный,
// пиксели перебираются в порядке row-major. Любое ненулевое значение
// считается объектом. Одинаковые маски всегда дают одинаковые строки.
func EncodeRLE(m Mask) string {
	var runs []string
	n := len(m.Pix)
	start := 0
	for i := 0; i <= n; i++ {
		inside := i < n && m.Pix[i] != 0
		if inside && start == 0 {
			start = i + 1
		}
		if !inside && start != 0 {
			runs = append(runs, strconv.Itoa(start), strconv.Itoa(i+1-start))
			start = 0
		}
	}
	return strings.Join(runs, " ")
}

// DecodeRLE декодирует RLE строку в маску заданной формы.
// Объект записывается значением 255. Нечетное число токенов, нечисловой
// токен или выход серии за пределы маски приводят к ошибке.
func DecodeRLE(rle string, height, width int) (Mask, error) {
	m, err := New(height, width)
	if err != nil {
		return Mask{}, err
	}

	tokens := strings.Fields(rle)
	if len(tokens)%2 != 0 {
		return Mask{}, fmt.Errorf("%w: нечетное число токенов (%d)", ErrParse, len(tokens))
	}

	size := height * width
	for i := 0; i < len(tokens); i += 2 {
		start, err := strconv.Atoi(tokens[i])
		if err != nil {
			return Mask{}, fmt.Errorf("%w: нечисловой токен %q", ErrParse, tokens[i])
		}
		length, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return Mask{}, fmt.Errorf("%w: нечисловой токен %q", ErrParse, tokens[i+1])
		}
		if start < 1 || length < 0 || start-1+length > size {
			return Mask{}, fmt.Errorf("%w: серия (%d, %d) выходит за пределы маски %dx%d",
				ErrParse, start, length, height, width)
		}
		for j := start - 1; j < start-1+length; j++ {
			m.Pix[j] = Foreground
		}
	}

	return m, nil
}

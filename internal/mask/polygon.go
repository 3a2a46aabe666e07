package mask

import (
	"fmt"
	"math"
	"sort"
)

// Point вершина полигона в пиксельных координатах
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromPolygon растеризует полигон разметки в бинарную маску заданной формы.
// Заливка построчная по правилу четности, пиксель принадлежит объекту,
// если его центр лежит внутри полигона.
func FromPolygon(points []Point, height, width int) (Mask, error) {
	m, err := New(height, width)
	if err != nil {
		return Mask{}, err
	}
	if len(points) < 3 {
		return Mask{}, fmt.Errorf("полигон должен содержать минимум 3 вершины, получено %d", len(points))
	}

	xs := make([]float64, 0, len(points))
	for y := 0; y < height; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]

		// Пересечения ребер полигона со строкой
		for i := range points {
			p1 := points[i]
			p2 := points[(i+1)%len(points)]
			if (p1.Y <= yc) == (p2.Y <= yc) {
				continue
			}
			t := (yc - p1.Y) / (p2.Y - p1.Y)
			xs = append(xs, p1.X+t*(p2.X-p1.X))
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Floor(xs[i+1] - 0.5))
			if from < 0 {
				from = 0
			}
			if to > width-1 {
				to = width - 1
			}
			for x := from; x <= to; x++ {
				m.Set(y, x, Foreground)
			}
		}
	}

	return m, nil
}

package mask

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// DefaultThreshold порог бинаризации для масок из изображений
const DefaultThreshold uint8 = 128

// DecodeImage читает изображение (PNG/JPEG и т.д.) и превращает его
// в бинарную маску: пиксели ярче порога становятся объектом (255)
func DecodeImage(r io.Reader, threshold uint8) (Mask, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return Mask{}, fmt.Errorf("ошибка декодирования изображения: %w", err)
	}
	return FromImage(img, threshold), nil
}

// FromImage бинаризует изображение в маску по порогу яркости
func FromImage(img image.Image, threshold uint8) Mask {
	bounds := img.Bounds()
	m, _ := New(bounds.Dy(), bounds.Dx())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			gray := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			if gray.Y >= threshold {
				m.Set(y, x, Foreground)
			}
		}
	}
	return m
}

// ToImage превращает маску в grayscale изображение
func ToImage(m Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(y, x) != 0 {
				img.SetGray(x, y, color.Gray{Y: Foreground})
			}
		}
	}
	return img
}

// Resize приводит маску к заданной форме методом ближайшего соседа,
// чтобы маска оставалась бинарной
func Resize(m Mask, height, width int) (Mask, error) {
	if height <= 0 || width <= 0 {
		return Mask{}, fmt.Errorf("недопустимая форма маски: %dx%d", height, width)
	}
	if m.Height == height && m.Width == width {
		return m, nil
	}
	resized := imaging.Resize(ToImage(m), width, height, imaging.NearestNeighbor)
	return FromImage(resized, DefaultThreshold), nil
}

package screen

import (
	"fmt"
	"image"

	"cscbatch/internal/config"

	"github.com/kbinani/screenshot"
)

// CaptureRect захватывает область экрана в память и возвращает декодированное изображение
func CaptureRect(c config.CoordinatesWithSize) (image.Image, error) {
	// Определяем область для захвата с переданными координатами
	bounds := image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height)

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %v", err)
	}

	return img, nil
}

// CaptureFullScreen захватывает скриншот всего основного дисплея
func CaptureFullScreen() (image.Image, error) {
	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(0))
	if err != nil {
		return nil, fmt.Errorf("failed to capture full screen: %v", err)
	}
	return img, nil
}

// GetPixelColor получает цвет пикселя по координатам
func GetPixelColor(img image.Image, x int, y int) (int, int, int) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return 0, 0, 0
	}

	clr := img.At(x, y)
	r, g, b, _ := clr.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

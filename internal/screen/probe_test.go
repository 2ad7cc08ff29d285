package screen

import (
	"image"
	"image/color"
	"testing"

	"cscbatch/internal/config"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestColorMatches(t *testing.T) {
	tests := []struct {
		name      string
		r, g, b   int
		want      config.RGB
		tolerance int
		expect    bool
	}{
		{"точное совпадение", 240, 240, 240, config.RGB{R: 240, G: 240, B: 240}, 0, true},
		{"в пределах допуска", 235, 242, 238, config.RGB{R: 240, G: 240, B: 240}, 10, true},
		{"за пределами допуска", 200, 240, 240, config.RGB{R: 240, G: 240, B: 240}, 10, false},
		{"серый вместо активного", 128, 128, 128, config.RGB{R: 60, G: 120, B: 216}, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorMatches(tt.r, tt.g, tt.b, tt.want, tt.tolerance)
			if got != tt.expect {
				t.Errorf("colorMatches(%d,%d,%d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.expect)
			}
		})
	}
}

func TestCenterMatches(t *testing.T) {
	img := solidImage(9, 9, color.RGBA{R: 60, G: 120, B: 216, A: 255})
	if !centerMatches(img, config.RGB{R: 60, G: 120, B: 216}, 0) {
		t.Error("центральный пиксель должен совпадать")
	}
	if centerMatches(img, config.RGB{R: 0, G: 0, B: 0}, 5) {
		t.Error("черный не должен совпадать с синим")
	}
}

func TestAnyNonBlack(t *testing.T) {
	black := solidImage(20, 20, color.RGBA{A: 255})
	if anyNonBlack(black) {
		t.Error("черное изображение не должно содержать нечерных пикселей")
	}

	black.SetRGBA(13, 7, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	if !anyNonBlack(black) {
		t.Error("нечерный пиксель не найден")
	}
}

func TestFindAppWindow(t *testing.T) {
	// Рисуем светлый прямоугольник 30x20 на черном фоне с углом в (10, 5)
	img := solidImage(100, 60, color.RGBA{A: 255})
	for y := 5; y < 25; y++ {
		for x := 10; x < 40; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 230, G: 230, B: 230, A: 255})
		}
	}

	win, err := FindAppWindow(img)
	if err != nil {
		t.Fatalf("FindAppWindow: %v", err)
	}
	if win.X != 10 || win.Y != 5 || win.Width != 30 || win.Height != 20 {
		t.Errorf("найдено окно %+v, ожидалось {10 5 30 20}", win)
	}
}

func TestFindAppWindow_NotFound(t *testing.T) {
	img := solidImage(50, 50, color.RGBA{A: 255})
	if _, err := FindAppWindow(img); err == nil {
		t.Error("на черном экране окно не должно находиться")
	}
}

func TestWindowAbsolute(t *testing.T) {
	win := &Window{X: 100, Y: 200, Width: 800, Height: 600}
	got := win.Absolute(image.Point{X: 15, Y: 48})
	if got.X != 115 || got.Y != 248 {
		t.Errorf("Absolute = %v, want {115 248}", got)
	}
}

func TestGetPixelColor_OutOfBounds(t *testing.T) {
	img := solidImage(5, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	r, g, b := GetPixelColor(img, 10, 10)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("за границами изображения ожидается (0,0,0), получено (%d,%d,%d)", r, g, b)
	}
}

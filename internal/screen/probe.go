package screen

import (
	"fmt"
	"image"

	"cscbatch/internal/config"
)

// StateProber определяет состояние интерфейса capscan по пикселям экрана.
// Привязка к конкретным областям и цветам живет в config.yaml: при смене
// версии capscan правится конфиг, а не код.
type StateProber struct {
	cfg *config.Config
}

// NewStateProber создает новый экземпляр StateProber
func NewStateProber(cfg *config.Config) *StateProber {
	return &StateProber{cfg: cfg}
}

// MainWindowVisible проверяет, что в области главного окна есть нечерные пиксели
func (p *StateProber) MainWindowVisible() (bool, error) {
	img, err := CaptureRect(p.cfg.Probe.MainWindow)
	if err != nil {
		return false, err
	}
	return anyNonBlack(img), nil
}

// DialogVisible проверяет, что открыт системный диалог открытия/сохранения
func (p *StateProber) DialogVisible() (bool, error) {
	return p.regionMatches(p.cfg.Probe.Dialog, p.cfg.Probe.DialogColor)
}

// RecognitionIdle проверяет, что кнопка "начать распознавание" снова активна.
// Пока идет распознавание, кнопка серая; возврат цвета означает завершение.
func (p *StateProber) RecognitionIdle() (bool, error) {
	return p.regionMatches(p.cfg.Probe.RecognitionButton, p.cfg.Probe.ButtonActiveColor)
}

// WindowOrigin находит окно capscan на экране и возвращает его левый верхний угол
func (p *StateProber) WindowOrigin() (image.Point, error) {
	fullScreen, err := CaptureFullScreen()
	if err != nil {
		return image.Point{}, fmt.Errorf("ошибка захвата экрана: %v", err)
	}

	win, err := FindAppWindow(cropTop(fullScreen, p.cfg.WindowTopOffset))
	if err != nil {
		return image.Point{}, err
	}

	return image.Point{X: win.X, Y: win.Y + p.cfg.WindowTopOffset}, nil
}

// regionMatches захватывает область и сравнивает центральный пиксель с ожидаемым цветом
func (p *StateProber) regionMatches(region config.CoordinatesWithSize, want config.RGB) (bool, error) {
	img, err := CaptureRect(region)
	if err != nil {
		return false, err
	}
	return centerMatches(img, want, p.cfg.Probe.ColorTolerance), nil
}

// centerMatches сравнивает цвет центрального пикселя изображения с ожидаемым
func centerMatches(img image.Image, want config.RGB, tolerance int) bool {
	bounds := img.Bounds()
	x := bounds.Min.X + bounds.Dx()/2
	y := bounds.Min.Y + bounds.Dy()/2
	r, g, b := GetPixelColor(img, x, y)
	return colorMatches(r, g, b, want, tolerance)
}

// colorMatches сравнивает цвет с ожидаемым с учетом допуска
func colorMatches(r, g, b int, want config.RGB, tolerance int) bool {
	return abs(r-want.R) <= tolerance && abs(g-want.G) <= tolerance && abs(b-want.B) <= tolerance
}

// anyNonBlack проверяет, есть ли в изображении хотя бы один нечерный пиксель
func anyNonBlack(img image.Image) bool {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !isBlackAt(img, x, y) {
				return true
			}
		}
	}
	return false
}

// cropTop обрезает верхние пиксели изображения (панель задач/заголовок)
func cropTop(img image.Image, offset int) image.Image {
	if offset <= 0 {
		return img
	}
	bounds := img.Bounds()
	cropped := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()-offset))
	for y := offset; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			cropped.Set(x, y-offset, img.At(x, y))
		}
	}
	return cropped
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

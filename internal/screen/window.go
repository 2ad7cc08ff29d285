package screen

import (
	"fmt"
	"image"
)

// Порог яркости: пиксели темнее считаются фоном/рамкой
const blackThreshold = 10

// Window представляет найденное окно capscan
type Window struct {
	X, Y, Width, Height int
}

// Absolute конвертирует относительные координаты окна в абсолютные экранные
func (w *Window) Absolute(p image.Point) image.Point {
	return image.Point{X: w.X + p.X, Y: w.Y + p.Y}
}

// FindAppWindow ищет первую нечерную точку, затем расширяет прямоугольник до границ окна (граница — черный цвет)
func FindAppWindow(img image.Image) (*Window, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// 1. Найти первую нечерную точку
	found := false
	var startX, startY int
	for y := 0; y < height && !found; y++ {
		for x := 0; x < width && !found; x++ {
			if !isBlackAt(img, x, y) {
				startX, startY = x, y
				found = true
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("окно capscan не найдено")
	}

	// 2. Расширяем прямоугольник до границ окна
	left, right := startX, startX
	top, bottom := startY, startY

	// Вправо
	for x := startX; x < width; x++ {
		if isBlackAt(img, x, startY) {
			break
		}
		right = x
	}
	// Влево
	for x := startX; x >= 0; x-- {
		if isBlackAt(img, x, startY) {
			break
		}
		left = x
	}
	// Вниз
	for y := startY; y < height; y++ {
		if isBlackAt(img, startX, y) {
			break
		}
		bottom = y
	}
	// Вверх
	for y := startY; y >= 0; y-- {
		if isBlackAt(img, startX, y) {
			break
		}
		top = y
	}

	return &Window{
		X:      left,
		Y:      top,
		Width:  right - left + 1,
		Height: bottom - top + 1,
	}, nil
}

func isBlackAt(img image.Image, x, y int) bool {
	r, g, b := GetPixelColor(img, x, y)
	return r < blackThreshold && g < blackThreshold && b < blackThreshold
}

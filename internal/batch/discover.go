package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover возвращает список png-файлов каталога, отсортированный лексикографически,
// чтобы порядок обработки был одинаковым от прогона к прогону.
// Подкаталоги не обходятся; пустой каталог — это пустой батч, а не ошибка.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения входного каталога: %v", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

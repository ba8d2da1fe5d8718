package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"umlts/internal/source"
)

// ListSourceFiles возвращает отсортированный список всех *.umlts файлов в
// директории. Скрытые каталоги (.git и т.п.) пропускаются.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if source.HasSourceExt(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

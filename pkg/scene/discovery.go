package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("scene")

// Discover scans dir for JSON scene files and returns their metadata sorted
// by name. A missing directory yields an empty list.
func Discover(dir string) ([]Info, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scene: scan %s: %w", dir, err)
	}

	scenes := make([]Info, 0, len(files))
	for _, filePath := range files {
		info, err := ParseMetadata(filePath)
		if err != nil {
			logger.Warningf("skipping %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseMetadata reads only the name and description of a JSON scene file.
// The file name stands in for a missing name.
func ParseMetadata(filePath string) (Info, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := Info{
		ID:       "file:" + base,
		Name:     titleCase(base),
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListAll returns the built-in scenes followed by the scenes discovered in dir
func ListAll(dir string) ([]Info, error) {
	fileScenes, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	return append(List(), fileScenes...), nil
}

// titleCase converts a file-style name to title case,
// e.g. "single-sphere" -> "Single Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

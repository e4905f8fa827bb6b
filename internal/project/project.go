// Package project handles persistence of projects and the board
// catalogue as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

// Save writes the project to the specified JSON file, creating parent
// directories if they do not exist.
func Save(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the specified JSON file.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	return p, nil
}

// DefaultCataloguePath returns the default file path for the stored
// board catalogue, located at ~/.boardbuyer/catalogue.json.
func DefaultCataloguePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".boardbuyer", "catalogue.json"), nil
}

// SaveCatalogue writes the board catalogue to the specified JSON file.
func SaveCatalogue(path string, boards []model.BoardType) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(boards, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalogue reads the board catalogue from the specified JSON file.
// If the file does not exist, it returns the default catalogue and saves it.
func LoadCatalogue(path string) ([]model.BoardType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			boards := model.DefaultCatalogue()
			if saveErr := SaveCatalogue(path, boards); saveErr != nil {
				return boards, saveErr
			}
			return boards, nil
		}
		return nil, err
	}
	var boards []model.BoardType
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("invalid catalogue file %s: %w", path, err)
	}
	return boards, nil
}

// LoadOrCreateCatalogue loads the catalogue from the default path,
// creating it with the default entries when missing.
func LoadOrCreateCatalogue() ([]model.BoardType, string, error) {
	path, err := DefaultCataloguePath()
	if err != nil {
		return model.DefaultCatalogue(), "", err
	}
	boards, err := LoadCatalogue(path)
	return boards, path, err
}

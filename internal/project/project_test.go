package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

func TestSaveLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "wardrobe.json")

	p := model.NewProject()
	p.Name = "Wardrobe"
	p.Pieces = []model.Piece{model.NewPiece("Shelf", 600, 300, 4)}
	p.Catalogue = []model.BoardType{model.NewBoardType("Full sheet", 2440, 1220, 45)}
	p.Plan = &model.Plan{Boards: []model.CommittedBoard{
		{Board: p.Catalogue[0], Index: 1, Placements: []model.Placement{
			{PieceID: p.Pieces[0].ID, X: 0, Y: 0, Width: 600, Height: 300, BoardIndex: 1},
		}},
	}}

	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadProject_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadProject_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project file")
}

func TestSaveLoadCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.json")
	boards := []model.BoardType{
		model.NewBoardType("Full sheet", 2440, 1220, 45),
		model.NewBoardType("Offcut", 600, 300, 5),
	}

	require.NoError(t, SaveCatalogue(path, boards))

	loaded, err := LoadCatalogue(path)
	require.NoError(t, err)
	assert.Equal(t, boards, loaded)
}

func TestLoadCatalogue_MissingFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.json")

	boards, err := LoadCatalogue(path)
	require.NoError(t, err)
	assert.Len(t, boards, len(model.DefaultCatalogue()))

	// The default was written to disk; a second load round-trips it.
	loaded, err := LoadCatalogue(path)
	require.NoError(t, err)
	assert.Equal(t, boards, loaded)
}

func TestLoadCatalogue_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.json")
	require.NoError(t, os.WriteFile(path, []byte("[oops"), 0644))

	_, err := LoadCatalogue(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalogue file")
}

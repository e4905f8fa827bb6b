package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	catalogue := []model.BoardType{
		model.NewBoardType("Full sheet", 2440, 1220, 45),
		model.NewBoardType("Offcut", 600, 300, 5),
	}
	settings := model.DefaultSettings()
	settings.AllowRotation = false

	require.NoError(t, ExportAllData(path, catalogue, settings))

	backup, err := ImportAllData(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", backup.Version)
	assert.NotEmpty(t, backup.CreatedAt)
	assert.Equal(t, catalogue, backup.Catalogue)
	assert.False(t, backup.Settings.AllowRotation)
}

func TestImportAllData_MissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestImportAllData_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json}"), 0644))

	_, err := ImportAllData(path)
	assert.Error(t, err)
}

func TestImportAllData_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"catalogue":[]}`), 0644))

	_, err := ImportAllData(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing version field")
}

func TestImportAllData_NilCatalogueNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0644))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.NotNil(t, backup.Catalogue)
	assert.Empty(t, backup.Catalogue)
}

package rpgtoolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

func TestSheetEntity(t *testing.T) {
	sheet := &coc.Sheet{
		ID:   "sheet-123",
		Name: "Harvey Walters",
	}

	entity := WrapSheet(sheet)

	assert.Equal(t, "sheet-123", entity.GetID())
	assert.Equal(t, "sheet", entity.GetType())
	assert.Equal(t, sheet, entity.Sheet)
}

func TestDiceSettingEntity(t *testing.T) {
	setting := &coc.DiceSetting{
		ID:   "dice-456",
		Name: "Standard 6th",
	}

	entity := WrapDiceSetting(setting)

	assert.Equal(t, "dice-456", entity.GetID())
	assert.Equal(t, "dice_setting", entity.GetType())
	assert.Equal(t, setting, entity.DiceSetting)
}

func TestEntityWrappers(t *testing.T) {
	t.Run("SheetEntity wrapping", func(t *testing.T) {
		sheet := &coc.Sheet{
			ID:         "test-sheet",
			Name:       "Harvey Walters",
			Version:    3,
			Edition:    coc.EditionSeventh,
			Occupation: "Journalist",
		}

		wrapped := &SheetEntity{Sheet: sheet}

		// Test that wrapper maintains access to original data
		assert.Equal(t, "test-sheet", wrapped.GetID())
		assert.Equal(t, "sheet", wrapped.GetType())
		assert.Equal(t, "Harvey Walters", wrapped.Name)
		assert.Equal(t, 3, wrapped.Version)
		assert.Equal(t, coc.EditionSeventh, wrapped.Edition)
		assert.Equal(t, "Journalist", wrapped.Occupation)
	})

	t.Run("ImageEntity wrapping", func(t *testing.T) {
		image := &coc.Image{
			ID:      "img-1",
			SheetID: "test-sheet",
			IsMain:  true,
		}

		wrapped := WrapImage(image)

		assert.Equal(t, "img-1", wrapped.GetID())
		assert.Equal(t, "sheet_image", wrapped.GetType())
		assert.True(t, wrapped.IsMain)
	})
}

package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// Entity types reported through core.Entity
const (
	EntityTypeSheet       = "sheet"
	EntityTypeImage       = "sheet_image"
	EntityTypeDiceSetting = "dice_setting"
)

// SheetEntity wraps coc.Sheet to implement core.Entity interface
type SheetEntity struct {
	*coc.Sheet
}

// GetID returns the sheet's ID
func (s *SheetEntity) GetID() string {
	return s.ID
}

// GetType returns the entity type for rpg-toolkit
func (s *SheetEntity) GetType() string {
	return EntityTypeSheet
}

// ImageEntity wraps coc.Image to implement core.Entity interface
type ImageEntity struct {
	*coc.Image
}

// GetID returns the image's ID
func (i *ImageEntity) GetID() string {
	return i.ID
}

// GetType returns the entity type for rpg-toolkit
func (i *ImageEntity) GetType() string {
	return EntityTypeImage
}

// DiceSettingEntity wraps coc.DiceSetting to implement core.Entity interface
type DiceSettingEntity struct {
	*coc.DiceSetting
}

// GetID returns the setting's ID
func (d *DiceSettingEntity) GetID() string {
	return d.ID
}

// GetType returns the entity type for rpg-toolkit
func (d *DiceSettingEntity) GetType() string {
	return EntityTypeDiceSetting
}

// WrapSheet converts a coc.Sheet to a SheetEntity
func WrapSheet(sheet *coc.Sheet) *SheetEntity {
	return &SheetEntity{Sheet: sheet}
}

// WrapImage converts a coc.Image to an ImageEntity
func WrapImage(image *coc.Image) *ImageEntity {
	return &ImageEntity{Image: image}
}

// WrapDiceSetting converts a coc.DiceSetting to a DiceSettingEntity
func WrapDiceSetting(setting *coc.DiceSetting) *DiceSettingEntity {
	return &DiceSettingEntity{DiceSetting: setting}
}

// Compile-time check that our entity wrappers implement core.Entity
var (
	_ core.Entity = (*SheetEntity)(nil)
	_ core.Entity = (*ImageEntity)(nil)
	_ core.Entity = (*DiceSettingEntity)(nil)
)

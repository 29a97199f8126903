package export

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/services/conversion"
)

// Sync statuses reported by SyncToVTT
const (
	SyncStatusDisabled = "disabled"
	SyncStatusReady    = "ready"
)

// ExportSnapshotInput defines the request for exporting one sheet as a snapshot
type ExportSnapshotInput struct {
	SheetID string
}

// ExportSnapshotOutput defines the response for exporting a snapshot
type ExportSnapshotOutput struct {
	Snapshot *conversion.Snapshot
}

// ImportSnapshotInput defines the request for importing a snapshot document
type ImportSnapshotInput struct {
	OwnerID string
	Data    []byte

	// NewName replaces the document's name when set
	NewName string
}

// ImportSnapshotOutput defines the response for importing a snapshot.
// Sheet is always version 1 of a new tree.
type ImportSnapshotOutput struct {
	Sheet  *coc.Sheet
	Skills []*coc.Skill
}

// ExportVTTInput defines the request for exporting one sheet to the VTT format
type ExportVTTInput struct {
	SheetID string
}

// ExportVTTOutput defines the response for a VTT export
type ExportVTTOutput struct {
	Character *conversion.VTTCharacter
}

// ExportVTTBulkInput defines the request for exporting many sheets
type ExportVTTBulkInput struct {
	SheetIDs []string
}

// ExportVTTBulkOutput holds one result per requested sheet, in request order
type ExportVTTBulkOutput struct {
	Results []*BulkResult
}

// BulkResult is either an exported character or the error that replaced it
type BulkResult struct {
	SheetID   string
	SheetName string
	Character *conversion.VTTCharacter
	Err       error
}

type bulkError struct {
	Error         bool   `json:"error"`
	CharacterID   string `json:"character_id"`
	CharacterName string `json:"character_name"`
	ErrorMessage  string `json:"error_message"`
}

// MarshalJSON renders the VTT object, or the error object on failure
func (r *BulkResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(bulkError{
			Error:         true,
			CharacterID:   r.SheetID,
			CharacterName: r.SheetName,
			ErrorMessage:  r.Err.Error(),
		})
	}
	return json.Marshal(r.Character)
}

// SyncToVTTInput defines the request for packaging a sheet for VTT sync
type SyncToVTTInput struct {
	SheetID string
}

// SyncToVTTOutput defines the response for a sync request. Character and
// SyncedAt are only set when Status is SyncStatusReady.
type SyncToVTTOutput struct {
	Status      string
	CharacterID string
	Character   *conversion.VTTCharacter
	SyncedAt    time.Time
}

// ResolveSyncConflictInput defines the request for resolving a sync conflict
type ResolveSyncConflictInput struct {
	ConflictFields []string
}

// ResolveSyncConflictOutput defines the response for resolving a sync conflict
type ResolveSyncConflictOutput struct {
	Resolution *conversion.Resolution
}

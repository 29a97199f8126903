package character

import (
	"context"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	equipmentrepo "github.com/KirkDiggler/coc-api/internal/repositories/equipment"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
)

// AddEquipment validates and stores a new equipment record on a sheet
func (o *Orchestrator) AddEquipment(ctx context.Context, input *AddEquipmentInput) (*AddEquipmentOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}
	if input.Equipment == nil {
		return nil, errors.InvalidArgument("equipment is required")
	}

	if _, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID}); err != nil {
		return nil, errors.Wrapf(err, "failed to get sheet")
	}

	now := o.clock.Now()
	e := input.Equipment.Clone()
	e.ID = o.equipmentIDs.Generate()
	e.SheetID = input.SheetID
	e.Name = coc.NormalizeName(e.Name)
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := coc.ValidateEquipment(e); err != nil {
		return nil, err
	}

	out, err := o.equipmentRepo.Put(ctx, equipmentrepo.PutInput{Equipment: e})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add equipment")
	}

	return &AddEquipmentOutput{Equipment: out.Equipment}, nil
}

// UpdateEquipment replaces an existing equipment record
func (o *Orchestrator) UpdateEquipment(
	ctx context.Context,
	input *UpdateEquipmentInput,
) (*UpdateEquipmentOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}
	if input.Equipment == nil || input.Equipment.ID == "" {
		return nil, errors.InvalidArgument("equipment ID is required")
	}

	existing, err := o.equipmentRepo.Get(ctx, equipmentrepo.GetInput{
		SheetID:     input.SheetID,
		EquipmentID: input.Equipment.ID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get equipment")
	}

	e := input.Equipment.Clone()
	e.SheetID = input.SheetID
	e.Name = coc.NormalizeName(e.Name)
	e.CreatedAt = existing.Equipment.CreatedAt
	e.UpdatedAt = o.clock.Now()

	if err := coc.ValidateEquipment(e); err != nil {
		return nil, err
	}

	out, err := o.equipmentRepo.Put(ctx, equipmentrepo.PutInput{Equipment: e})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update equipment")
	}

	return &UpdateEquipmentOutput{Equipment: out.Equipment}, nil
}

// RemoveEquipment deletes an equipment record
func (o *Orchestrator) RemoveEquipment(
	ctx context.Context,
	input *RemoveEquipmentInput,
) (*RemoveEquipmentOutput, error) {
	if input == nil || input.SheetID == "" || input.EquipmentID == "" {
		return nil, errors.InvalidArgument("sheet ID and equipment ID are required")
	}

	if _, err := o.equipmentRepo.Delete(ctx, equipmentrepo.DeleteInput{
		SheetID:     input.SheetID,
		EquipmentID: input.EquipmentID,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to remove equipment")
	}

	return &RemoveEquipmentOutput{}, nil
}

// ListEquipment lists a sheet's equipment
func (o *Orchestrator) ListEquipment(ctx context.Context, input *ListEquipmentInput) (*ListEquipmentOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	out, err := o.equipmentRepo.List(ctx, equipmentrepo.ListInput{SheetID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list equipment")
	}

	return &ListEquipmentOutput{Equipment: out.Equipment}, nil
}

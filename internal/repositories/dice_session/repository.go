// Package dicesession stores short-lived ability roll sessions so a player can
// review a set of rolls before applying them to a sheet
package dicesession

import (
	"context"
	"time"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/coc-api/internal/repositories/dice_session Repository

// ContextAbilityRolls groups the rolls produced by a full ability roll
const ContextAbilityRolls = "ability_rolls"

// DiceSession is a set of rolls grouped by owner and context
type DiceSession struct {
	// Owner of the rolls (user id)
	OwnerID string `json:"owner_id"`

	// Context for grouping related rolls (e.g. "ability_rolls")
	Context string `json:"context"`

	// Dice setting the rolls were produced from, if any
	SettingID string `json:"setting_id,omitempty"`

	Rolls []DiceRoll `json:"rolls"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DiceRoll is the outcome of rolling one ability's formula
type DiceRoll struct {
	RollID string `json:"roll_id"`

	Ability coc.Ability `json:"ability"`

	// Formula in display form, e.g. "2D6+6"
	Notation string `json:"notation"`

	// Individual die faces
	Dice []int `json:"dice"`

	// Sum of the dice before the bonus
	DiceTotal int `json:"dice_total"`

	Bonus int `json:"bonus"`

	// DiceTotal + Bonus
	Total int `json:"total"`
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	OwnerID   string
	Context   string
	SettingID string
	Rolls     []DiceRoll
	TTL       time.Duration // How long the session should live
}

// CreateOutput contains the result of creating a dice session
type CreateOutput struct {
	Session *DiceSession
}

// GetInput contains parameters for retrieving a dice session
type GetInput struct {
	OwnerID string
	Context string
}

// GetOutput contains the result of retrieving a dice session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput contains parameters for deleting a dice session
type DeleteInput struct {
	OwnerID string
	Context string
}

// DeleteOutput contains the result of deleting a dice session
type DeleteOutput struct {
	RollsDeleted int
}

// Repository defines the interface for dice session storage operations
type Repository interface {
	// Create stores a new dice session with the specified TTL, replacing any
	// session already held for the same owner and context
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a dice session by owner and context
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a dice session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

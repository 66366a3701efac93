package domain

import "time"

type LostfoundType string

const (
	LostfoundLost  LostfoundType = "lost"
	LostfoundFound LostfoundType = "found"
)

// LostfoundItem is a lost-and-found posting. Cardnum ties the item to its
// author; Name is the author's display name cached at creation time.
type LostfoundItem struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	Cardnum string `json:"-" gorm:"size:32;index;not null"`
	Name    string `json:"name"`

	Type        LostfoundType `json:"type" gorm:"size:8;index;not null"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description"`
	Contact     string        `json:"contact"`
	Resolved    bool          `json:"resolved" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LostfoundItem) TableName() string { return "lostfound_items" }

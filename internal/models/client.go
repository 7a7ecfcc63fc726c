package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	TagVIP      = "vip"
	TagNew      = "new"
	TagRegular  = "regular"
	TagInactive = "inactive"
)

// Client holds aggregate visit statistics. Tags other than the
// regular→new demotion are maintained outside the scheduling engine.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	TotalVisits int             `gorm:"default:0" json:"total_visits"`
	TotalSpent  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_spent"`
	NoShowCount int             `gorm:"default:0" json:"no_show_count"`
	LastVisit   *string         `gorm:"size:10" json:"last_visit"`

	Tags datatypes.JSONSlice[string] `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ReplaceTag removes from and adds to, keeping the set free of duplicates.
func (c *Client) ReplaceTag(from, to string) {
	out := make([]string, 0, len(c.Tags)+1)
	for _, t := range c.Tags {
		if t == from || t == to {
			continue
		}
		out = append(out, t)
	}
	c.Tags = append(out, to)
}

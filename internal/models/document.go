// Package models holds the gorm entities.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentModel is a saved editor document owned by one backend user.
// Content is stored as HTML.
type DocumentModel struct {
	ID         string         `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID    string         `json:"ownerId" gorm:"type:varchar(64);index:idx_documents_owner_created,priority:1;not null"`
	Title      string         `json:"title" gorm:"type:varchar(255);not null"`
	Content    string         `json:"content" gorm:"type:longtext"`
	CoverImage string         `json:"coverImage,omitempty" gorm:"type:varchar(1024)"`
	WordCount  int            `json:"wordCount"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"index:idx_documents_owner_created,priority:2"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (DocumentModel) TableName() string { return "documents" }

// BeforeCreate assigns a uuid when the caller did not.
func (d *DocumentModel) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is an uploaded document (cheque scans, receipts). The file
// body lives on disk under the configured attachments dir; StoredName is
// the on-disk file name.
type Attachment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FileName   string    `gorm:"column:file_name;not null"`
	StoredName string    `gorm:"column:stored_name;not null;uniqueIndex"`
	MimeType   string    `gorm:"column:mime_type;not null"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null"`

	CreatedBy string    `gorm:"column:created_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (a *Attachment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

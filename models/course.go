package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null" json:"subject_id"`
	Subject   Subject   `gorm:"constraint:OnDelete:CASCADE;" json:"subject,omitempty"`
	// Chủ sở hữu: gán một lần lúc tạo, không bao giờ đổi
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;" json:"owner,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Slug      string    `gorm:"size:255;index" json:"slug"`
	Overview  string    `gorm:"type:text" json:"overview"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Modules   []Module  `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

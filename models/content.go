package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bốn loại nội dung cố định của một module
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
	ContentTypeFile  = "file"
)

// ContentItem là interface chung cho mọi loại nội dung.
// Render trả về biểu diễn hiển thị (read-only) của item,
// API công khai chỉ được thấy kết quả Render, không thấy cột thô.
type ContentItem interface {
	Render() map[string]interface{}
	ItemID() uuid.UUID
}

// Content gắn một vị trí (sort_order) với đúng một item đa hình.
type Content struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"module_id"`
	Module    Module    `gorm:"constraint:OnDelete:CASCADE;" json:"module,omitempty"`
	SortOrder int       `gorm:"column:sort_order;default:0" json:"order"`
	ItemType  string    `gorm:"size:20;not null" json:"item_type"` // text | image | video | file
	ItemID    uuid.UUID `gorm:"type:uuid;not null" json:"item_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Item được nạp thủ công qua LoadItem (đa hình, không có FK chung)
	Item ContentItem `gorm:"-" json:"-"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// itemFactories là bảng dispatch đóng: tên loại -> constructor.
// Tên ngoài bảng này bị coi là không tồn tại (404), không dùng reflection.
var itemFactories = map[string]func() ContentItem{
	ContentTypeText:  func() ContentItem { return &TextItem{} },
	ContentTypeImage: func() ContentItem { return &ImageItem{} },
	ContentTypeVideo: func() ContentItem { return &VideoItem{} },
	ContentTypeFile:  func() ContentItem { return &FileItem{} },
}

// NewItemForType trả về item rỗng đúng loại, ok=false nếu tên loại không hợp lệ
func NewItemForType(itemType string) (ContentItem, bool) {
	factory, ok := itemFactories[itemType]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// LoadItem nạp item đa hình cho envelope từ DB
func (c *Content) LoadItem(db *gorm.DB) error {
	item, ok := NewItemForType(c.ItemType)
	if !ok {
		return fmt.Errorf("loại nội dung không hợp lệ: %s", c.ItemType)
	}
	if err := db.First(item, "id = ?", c.ItemID).Error; err != nil {
		return err
	}
	c.Item = item
	return nil
}

/* ========== TEXT ========== */

type TextItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *TextItem) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *TextItem) ItemID() uuid.UUID { return t.ID }

func (t *TextItem) Render() map[string]interface{} {
	return map[string]interface{}{
		"type":    ContentTypeText,
		"title":   t.Title,
		"content": t.Body,
	}
}

/* ========== IMAGE ========== */

type ImageItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	URL       string    `gorm:"type:text;not null" json:"url"` // public URL trên Supabase Storage
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *ImageItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *ImageItem) ItemID() uuid.UUID { return i.ID }

func (i *ImageItem) Render() map[string]interface{} {
	return map[string]interface{}{
		"type":  ContentTypeImage,
		"title": i.Title,
		"url":   i.URL,
		"html":  fmt.Sprintf(`<img src=%q alt=%q>`, i.URL, i.Title),
	}
}

/* ========== VIDEO ========== */

type VideoItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	URL       string    `gorm:"type:text;not null" json:"url"` // link YouTube/Vimeo...
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (v *VideoItem) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v *VideoItem) ItemID() uuid.UUID { return v.ID }

func (v *VideoItem) Render() map[string]interface{} {
	return map[string]interface{}{
		"type":  ContentTypeVideo,
		"title": v.Title,
		"url":   v.URL,
		"html":  fmt.Sprintf(`<iframe src=%q frameborder="0" allowfullscreen></iframe>`, v.URL),
	}
}

/* ========== FILE ========== */

type FileItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	URL          string    `gorm:"type:text;not null" json:"url"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	FileSize     int64     `json:"file_size"` // bytes
	Excerpt      string    `gorm:"type:text" json:"excerpt"` // trích đoạn text (PDF) để preview
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *FileItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *FileItem) ItemID() uuid.UUID { return f.ID }

func (f *FileItem) Render() map[string]interface{} {
	rendered := map[string]interface{}{
		"type":          ContentTypeFile,
		"title":         f.Title,
		"url":           f.URL,
		"original_name": f.OriginalName,
		"file_size":     f.FileSize,
		"html":          fmt.Sprintf(`<a href=%q>%s</a>`, f.URL, f.Title),
	}
	if f.Excerpt != "" {
		rendered["excerpt"] = f.Excerpt
	}
	return rendered
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemForTypeClosedSet(t *testing.T) {
	for _, itemType := range []string{ContentTypeText, ContentTypeImage, ContentTypeVideo, ContentTypeFile} {
		item, ok := NewItemForType(itemType)
		require.True(t, ok, itemType)
		require.NotNil(t, item)
		assert.Equal(t, itemType, item.Render()["type"])
	}

	// Tên ngoài tập đóng -> không hợp lệ
	for _, bad := range []string{"audio", "pdf", "", "Text", "TEXT"} {
		_, ok := NewItemForType(bad)
		assert.False(t, ok, bad)
	}
}

func TestTextItemRender(t *testing.T) {
	item := &TextItem{Title: "Bài đọc", Body: "nội dung bài"}
	rendered := item.Render()

	assert.Equal(t, ContentTypeText, rendered["type"])
	assert.Equal(t, "Bài đọc", rendered["title"])
	assert.Equal(t, "nội dung bài", rendered["content"])
	assert.NotContains(t, rendered, "owner_id")
}

func TestVideoItemRenderEmbed(t *testing.T) {
	item := &VideoItem{Title: "Bài giảng", URL: "https://youtu.be/abc"}
	rendered := item.Render()

	assert.Equal(t, ContentTypeVideo, rendered["type"])
	assert.Equal(t, "https://youtu.be/abc", rendered["url"])
	assert.Contains(t, rendered["html"], `<iframe src="https://youtu.be/abc"`)
}

func TestImageItemRender(t *testing.T) {
	item := &ImageItem{Title: "Sơ đồ", URL: "https://cdn.example.com/a.png"}
	rendered := item.Render()

	assert.Equal(t, ContentTypeImage, rendered["type"])
	assert.Contains(t, rendered["html"], `<img src="https://cdn.example.com/a.png"`)
}

func TestFileItemRenderWithExcerpt(t *testing.T) {
	item := &FileItem{
		Title:        "Giáo trình",
		URL:          "https://cdn.example.com/giao-trinh.pdf",
		OriginalName: "giao-trinh.pdf",
		FileSize:     1024,
	}
	rendered := item.Render()

	assert.Equal(t, ContentTypeFile, rendered["type"])
	assert.Equal(t, "giao-trinh.pdf", rendered["original_name"])
	assert.EqualValues(t, 1024, rendered["file_size"])
	assert.NotContains(t, rendered, "excerpt") // rỗng thì không trả

	item.Excerpt = "chương 1..."
	assert.Equal(t, "chương 1...", item.Render()["excerpt"])
}

package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-course-backend/config"
	"github.com/vnkhanh/e-course-backend/models"
	"github.com/vnkhanh/e-course-backend/services"
	"github.com/vnkhanh/e-course-backend/utils"
)

// itemBinder đọc input của một loại nội dung từ request.
// existing == nil -> tạo item mới, khác nil -> cập nhật item đó.
// Bảng binder là tập đóng, khớp với models.NewItemForType.
type itemBinder func(c *gin.Context, ownerID uuid.UUID, existing models.ContentItem) (models.ContentItem, error)

var itemBinders = map[string]itemBinder{
	models.ContentTypeText:  bindTextItem,
	models.ContentTypeVideo: bindVideoItem,
	models.ContentTypeImage: bindImageItem,
	models.ContentTypeFile:  bindFileItem,
}

type TextItemInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

func bindTextItem(c *gin.Context, ownerID uuid.UUID, existing models.ContentItem) (models.ContentItem, error) {
	var input TextItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return nil, errors.New("Tiêu đề bắt buộc")
	}

	if existing != nil {
		item, ok := existing.(*models.TextItem)
		if !ok {
			return nil, errors.New("Loại nội dung không khớp")
		}
		item.Title = input.Title
		item.Body = input.Body
		return item, nil
	}

	return &models.TextItem{OwnerID: ownerID, Title: input.Title, Body: input.Body}, nil
}

type VideoItemInput struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required,url"`
}

func bindVideoItem(c *gin.Context, ownerID uuid.UUID, existing models.ContentItem) (models.ContentItem, error) {
	var input VideoItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return nil, errors.New("Tiêu đề và URL video bắt buộc")
	}

	if existing != nil {
		item, ok := existing.(*models.VideoItem)
		if !ok {
			return nil, errors.New("Loại nội dung không khớp")
		}
		item.Title = input.Title
		item.URL = input.URL
		return item, nil
	}

	return &models.VideoItem{OwnerID: ownerID, Title: input.Title, URL: input.URL}, nil
}

// Ảnh gửi dạng multipart: title + file "image".
// Khi cập nhật, file có thể bỏ trống để giữ ảnh cũ.
func bindImageItem(c *gin.Context, ownerID uuid.UUID, existing models.ContentItem) (models.ContentItem, error) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		return nil, errors.New("Tiêu đề bắt buộc")
	}

	var item *models.ImageItem
	if existing != nil {
		var ok bool
		item, ok = existing.(*models.ImageItem)
		if !ok {
			return nil, errors.New("Loại nội dung không khớp")
		}
	} else {
		item = &models.ImageItem{OwnerID: ownerID}
	}
	item.Title = title

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if existing != nil && item.URL != "" {
			return item, nil // giữ ảnh cũ
		}
		return nil, errors.New("File ảnh bắt buộc")
	}

	url, err := utils.UploadImageToSupabase(fileHeader, uuid.New().String())
	if err != nil {
		return nil, errors.New("Upload ảnh thất bại")
	}

	// Xóa ảnh cũ (best-effort) khi thay ảnh mới
	if item.URL != "" && item.URL != url {
		_ = utils.DeleteFileFromSupabase(item.URL)
	}
	item.URL = url
	return item, nil
}

// File gửi dạng multipart: title + file "file".
// PDF được trích đoạn text để preview.
func bindFileItem(c *gin.Context, ownerID uuid.UUID, existing models.ContentItem) (models.ContentItem, error) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		return nil, errors.New("Tiêu đề bắt buộc")
	}

	var item *models.FileItem
	if existing != nil {
		var ok bool
		item, ok = existing.(*models.FileItem)
		if !ok {
			return nil, errors.New("Loại nội dung không khớp")
		}
	} else {
		item = &models.FileItem{OwnerID: ownerID}
	}
	item.Title = title

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if existing != nil && item.URL != "" {
			return item, nil // giữ file cũ
		}
		return nil, errors.New("File bắt buộc")
	}

	url, err := utils.UploadFileToSupabase(fileHeader, uuid.New().String())
	if err != nil {
		return nil, errors.New("Upload file thất bại")
	}

	if item.URL != "" && item.URL != url {
		_ = utils.DeleteFileFromSupabase(item.URL)
	}
	item.URL = url
	item.OriginalName = fileHeader.Filename
	item.FileSize = fileHeader.Size
	item.Excerpt = services.ExtractExcerpt(fileHeader)
	return item, nil
}

/*========= HANDLERS ==========*/

// GET /manage/modules/:id/contents
func ListModuleContents(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var module models.Module
	if err := config.DB.
		Scopes(models.OwnedModules(ownerID)).
		First(&module, "modules.id = ?", moduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy module"})
		return
	}

	var contents []models.Content
	if err := config.DB.Where("module_id = ?", module.ID).Order("sort_order ASC").Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách nội dung"})
		return
	}

	out := make([]gin.H, 0, len(contents))
	for i := range contents {
		if err := contents[i].LoadItem(config.DB); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể nạp nội dung"})
			return
		}
		out = append(out, gin.H{
			"id":        contents[i].ID,
			"order":     contents[i].SortOrder,
			"item_type": contents[i].ItemType,
			"item":      contents[i].Item.Render(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"module_id": module.ID,
		"contents":  out,
	})
}

// POST /manage/modules/:id/contents/:type
// Lần lưu đầu tiên tạo item và envelope trong cùng một transaction
func CreateContent(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	// Tên loại ngoài tập {text, image, video, file} -> 404, chưa ghi gì vào DB
	itemType := c.Param("type")
	binder, ok := itemBinders[itemType]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loại nội dung không tồn tại"})
		return
	}

	var module models.Module
	if err := config.DB.
		Scopes(models.OwnedModules(ownerID)).
		First(&module, "modules.id = ?", moduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy module"})
		return
	}

	item, err := binder(c, ownerID, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var content models.Content
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		// Chèn vào cuối module
		var maxOrder int
		if err := tx.Model(&models.Content{}).Where("module_id = ?", module.ID).
			Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder).Error; err != nil {
			return err
		}

		content = models.Content{
			ModuleID:  module.ID,
			SortOrder: maxOrder + 1,
			ItemType:  itemType,
			ItemID:    item.ItemID(),
		}
		return tx.Create(&content).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo nội dung"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo nội dung thành công",
		"content": gin.H{
			"id":        content.ID,
			"module_id": content.ModuleID,
			"order":     content.SortOrder,
			"item_type": content.ItemType,
			"item":      item.Render(),
		},
	})
}

// PUT /manage/contents/:id
// Chỉ sửa item, không tạo envelope mới
func UpdateContent(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var content models.Content
	if err := config.DB.
		Scopes(models.OwnedContents(ownerID)).
		First(&content, "contents.id = ?", contentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy nội dung"})
		return
	}

	if err := content.LoadItem(config.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể nạp nội dung"})
		return
	}

	binder := itemBinders[content.ItemType]
	item, err := binder(c, ownerID, content.Item)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật nội dung thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thành công",
		"content": gin.H{
			"id":        content.ID,
			"module_id": content.ModuleID,
			"order":     content.SortOrder,
			"item_type": content.ItemType,
			"item":      item.Render(),
		},
	})
}

// DELETE /manage/contents/:id
// Xóa item và envelope cùng nhau
func DeleteContent(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Chưa đăng nhập"})
		return
	}

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var content models.Content
	if err := config.DB.
		Scopes(models.OwnedContents(ownerID)).
		First(&content, "contents.id = ?", contentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy nội dung"})
		return
	}

	// Lấy URL file đính kèm (nếu có) trước khi xóa để dọn storage
	var storedURL string
	if err := content.LoadItem(config.DB); err == nil {
		switch item := content.Item.(type) {
		case *models.ImageItem:
			storedURL = item.URL
		case *models.FileItem:
			storedURL = item.URL
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		item, ok := models.NewItemForType(content.ItemType)
		if !ok {
			return errors.New("loại nội dung không hợp lệ")
		}
		if err := tx.Delete(item, "id = ?", content.ItemID).Error; err != nil {
			return err
		}
		return tx.Delete(&content).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Xóa nội dung thất bại"})
		return
	}

	// Dọn object trên Supabase sau khi commit (best-effort)
	if storedURL != "" {
		_ = utils.DeleteFileFromSupabase(storedURL)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa nội dung thành công"})
}

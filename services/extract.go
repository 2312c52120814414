package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Giới hạn độ dài trích đoạn lưu kèm FileItem
const maxExcerptLen = 2000

func ExtractTextFromPDF(file multipart.File) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("lỗi đọc file PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("không thể tạo reader PDF: %w", err)
	}

	var textBuilder bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
	}

	return textBuilder.String(), nil
}

// ExtractExcerpt trả về trích đoạn text ngắn của file PDF để hiển thị preview.
// File không phải PDF (hoặc đọc lỗi) thì trả chuỗi rỗng, không chặn upload.
func ExtractExcerpt(fileHeader *multipart.FileHeader) string {
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return ""
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ""
	}
	defer file.Close()

	text, err := ExtractTextFromPDF(file)
	if err != nil {
		return ""
	}

	text = strings.TrimSpace(text)
	if len(text) > maxExcerptLen {
		text = text[:maxExcerptLen]
	}
	return text
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Các scope lọc theo chủ sở hữu. Mọi thao tác list/update/delete trên
// Course/Module/Content đều phải đi qua một trong các scope này:
// bản ghi của người khác coi như không tồn tại (404, không phải 403).

// OwnedCourses: khóa học thuộc về ownerID
func OwnedCourses(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("courses.owner_id = ?", ownerID)
	}
}

// OwnedModules: module có khóa học cha thuộc về ownerID
func OwnedModules(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Select("modules.*").
			Joins("JOIN courses ON courses.id = modules.course_id").
			Where("courses.owner_id = ?", ownerID)
	}
}

// OwnedContents: content có module -> course thuộc về ownerID
func OwnedContents(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Select("contents.*").
			Joins("JOIN modules ON modules.id = contents.module_id").
			Joins("JOIN courses ON courses.id = modules.course_id").
			Where("courses.owner_id = ?", ownerID)
	}
}

// OwnedCourseIDs: subquery id khóa học của owner (dùng cho update có điều kiện)
func OwnedCourseIDs(db *gorm.DB, ownerID uuid.UUID) *gorm.DB {
	return db.Model(&Course{}).Select("id").Where("owner_id = ?", ownerID)
}

// OwnedModuleIDs: subquery id module của owner
func OwnedModuleIDs(db *gorm.DB, ownerID uuid.UUID) *gorm.DB {
	return db.Model(&Module{}).Select("modules.id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.owner_id = ?", ownerID)
}

package models

// User represents the user model in the database
type User struct {
	Base
	Username    string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	IsSuperuser bool       `gorm:"default:false" json:"is_superuser"`
	Categories  []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
}

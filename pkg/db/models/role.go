package models

// Role is a named capability grant attached to users.
type Role struct {
	ID   int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:text;not null;uniqueIndex:roles_name_key"`
}

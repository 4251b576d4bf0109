package model

// Parent 家长，对应 parents
type Parent struct {
	ID       string  `gorm:"type:uuid;primaryKey"       json:"id"`
	Username string  `gorm:"type:varchar(20);not null"  json:"username"`
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	Surname  string  `gorm:"type:varchar(100);not null" json:"surname"`
	Email    *string `gorm:"type:varchar(255)"          json:"email,omitempty"`
	Phone    string  `gorm:"type:varchar(30);not null"  json:"phone"`
	Address  string  `gorm:"type:varchar(255);not null" json:"address"`
	BaseModel

	// 关联
	Students []Student `gorm:"foreignKey:ParentID" json:"students,omitempty"`
}

func (Parent) TableName() string { return "parents" }

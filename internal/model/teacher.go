package model

import "gorm.io/datatypes"

// Teacher 教师，对应 teachers
type Teacher struct {
	ID        string         `gorm:"type:uuid;primaryKey"           json:"id"`
	Username  string         `gorm:"type:varchar(20);not null"      json:"username"`
	Name      string         `gorm:"type:varchar(100);not null"     json:"name"`
	Surname   string         `gorm:"type:varchar(100);not null"     json:"surname"`
	Email     *string        `gorm:"type:varchar(255)"              json:"email,omitempty"`
	Phone     *string        `gorm:"type:varchar(30)"               json:"phone,omitempty"`
	Address   string         `gorm:"type:varchar(255);not null"     json:"address"`
	Img       *string        `gorm:"type:varchar(500)"              json:"img,omitempty"`
	BloodType string         `gorm:"type:varchar(5);not null"       json:"blood_type"`
	Sex       string         `gorm:"type:varchar(6);not null"       json:"sex"`
	Birthday  datatypes.Date `gorm:"not null"                       json:"birthday"`
	BaseModel

	// 关联
	Subjects []Subject `gorm:"many2many:subject_teachers;joinForeignKey:TeacherID;joinReferences:SubjectID" json:"subjects,omitempty"`
	Classes  []Class   `gorm:"foreignKey:SupervisorID"                                                       json:"classes,omitempty"`
}

func (Teacher) TableName() string { return "teachers" }

package model

// Subject 科目，对应 subjects，与教师多对多（subject_teachers）
type Subject struct {
	ID   int    `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	BaseModel

	// 关联
	Teachers []Teacher `gorm:"many2many:subject_teachers;joinForeignKey:SubjectID;joinReferences:TeacherID" json:"teachers,omitempty"`
}

func (Subject) TableName() string { return "subjects" }

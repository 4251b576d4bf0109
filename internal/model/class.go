package model

// Grade 年级，对应 grades
type Grade struct {
	ID    int `gorm:"primaryKey"       json:"id"`
	Level int `gorm:"not null;unique"  json:"level"`
}

func (Grade) TableName() string { return "grades" }

// Class 班级，对应 classes
type Class struct {
	ID           int     `gorm:"primaryKey"                json:"id"`
	Name         string  `gorm:"type:varchar(50);not null" json:"name"`
	Capacity     int     `gorm:"not null"                  json:"capacity"`
	SupervisorID *string `gorm:"type:uuid"                 json:"supervisor_id,omitempty"`
	GradeID      int     `gorm:"not null"                  json:"grade_id"`
	BaseModel

	// 关联
	Supervisor *Teacher `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Grade      *Grade   `gorm:"foreignKey:GradeID"      json:"grade,omitempty"`
}

func (Class) TableName() string { return "classes" }

// ClassOption 表单下拉用：班级及当前人数（非表模型）
type ClassOption struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	StudentCount int64  `json:"student_count"`
}

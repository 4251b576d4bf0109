package dto

// ── 人员模块 DTO（教师 / 学生 / 家长） ──

// AccountFields 创建账号所需的公共字段；更新时 Password 为空表示不修改
type AccountFields struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

// ProfileFields 教师与学生共有的档案字段
type ProfileFields struct {
	Name      string  `json:"name"       binding:"required,max=100"`
	Surname   string  `json:"surname"    binding:"required,max=100"`
	Email     *string `json:"email"      binding:"omitempty,email,max=255"`
	Phone     *string `json:"phone"      binding:"omitempty,max=30"`
	Address   string  `json:"address"    binding:"required,max=255"`
	Img       *string `json:"img"        binding:"omitempty,url,max=500"`
	BloodType string  `json:"blood_type" binding:"required,bloodtype"`
	Sex       string  `json:"sex"        binding:"required,sex"`
	Birthday  string  `json:"birthday"   binding:"required,datetime=2006-01-02"`
}

// TeacherRequest 创建 / 更新教师
type TeacherRequest struct {
	AccountFields
	ProfileFields
	Subjects []int `json:"subjects" binding:"omitempty,dive,min=1"`
}

// StudentRequest 创建 / 更新学生
type StudentRequest struct {
	AccountFields
	ProfileFields
	ParentID string `json:"parent_id" binding:"required,uuid"`
	ClassID  int    `json:"class_id"  binding:"required,min=1"`
	GradeID  int    `json:"grade_id"  binding:"required,min=1"`
}

// ParentRequest 创建 / 更新家长
type ParentRequest struct {
	AccountFields
	Name    string  `json:"name"    binding:"required,max=100"`
	Surname string  `json:"surname" binding:"required,max=100"`
	Email   *string `json:"email"   binding:"omitempty,email,max=255"`
	Phone   string  `json:"phone"   binding:"required,max=30"`
	Address string  `json:"address" binding:"required,max=255"`
}

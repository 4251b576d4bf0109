package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
	pkgerrors "school-hub/backend/pkg/errors"
)

// ── 人员模块业务错误 ──

var (
	ErrTeacherNotFound  = errors.New("教师不存在")
	ErrStudentNotFound  = errors.New("学生不存在")
	ErrParentNotFound   = errors.New("家长不存在")
	ErrUsernameTaken    = errors.New("用户名已存在")
	ErrContactTaken     = errors.New("邮箱或手机号已被使用")
	ErrPasswordRequired = errors.New("创建账号时必须设置密码")
	ErrInvalidBirthday  = errors.New("出生日期格式错误")
	ErrClassFull        = errors.New("班级人数已满")
)

// PeopleService 教师、学生、家长的维护
//
// 每个人员同时拥有登录账号（accounts）与档案（teachers / students /
// parents），两者共用同一个 ID，在同一事务中创建与更新；删除账号时
// 档案随外键级联删除。
type PeopleService interface {
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)
	CreateTeacher(ctx context.Context, actor Actor, req *dto.TeacherRequest) (*model.Teacher, error)
	UpdateTeacher(ctx context.Context, actor Actor, id string, req *dto.TeacherRequest) (*model.Teacher, error)
	DeleteTeacher(ctx context.Context, id string) error

	GetStudent(ctx context.Context, id string) (*model.Student, error)
	CreateStudent(ctx context.Context, actor Actor, req *dto.StudentRequest) (*model.Student, error)
	UpdateStudent(ctx context.Context, actor Actor, id string, req *dto.StudentRequest) (*model.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	GetParent(ctx context.Context, id string) (*model.Parent, error)
	CreateParent(ctx context.Context, actor Actor, req *dto.ParentRequest) (*model.Parent, error)
	UpdateParent(ctx context.Context, actor Actor, id string, req *dto.ParentRequest) (*model.Parent, error)
	DeleteParent(ctx context.Context, id string) error
}

type peopleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewPeopleService(repo *repository.Repository, logger *zap.Logger) PeopleService {
	return &peopleService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// 教师
// ═══════════════════════════════════════════════════════════

func (s *peopleService) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	t, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTeacherNotFound)
	}
	return t, nil
}

func (s *peopleService) CreateTeacher(ctx context.Context, actor Actor, req *dto.TeacherRequest) (*model.Teacher, error) {
	teacher, err := teacherFromRequest(req)
	if err != nil {
		return nil, err
	}
	teacher.CreatedBy = actor.auditID()
	teacher.UpdatedBy = actor.auditID()

	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		id, err := createAccount(ctx, tx, req.AccountFields, model.RoleTeacher)
		if err != nil {
			return err
		}
		teacher.ID = id
		if err := tx.Teacher.Create(ctx, teacher, req.Subjects); err != nil {
			return profileError(err)
		}
		return nil
	})
	if err != nil {
		return nil, s.logUnexpected("创建教师失败", err)
	}

	s.logger.Info("教师已创建", zap.String("teacher_id", teacher.ID), zap.String("operator", actor.ID))
	return s.GetTeacher(ctx, teacher.ID)
}

func (s *peopleService) UpdateTeacher(ctx context.Context, actor Actor, id string, req *dto.TeacherRequest) (*model.Teacher, error) {
	teacher, err := teacherFromRequest(req)
	if err != nil {
		return nil, err
	}
	teacher.ID = id
	teacher.UpdatedBy = actor.auditID()

	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := updateAccount(ctx, tx, id, model.RoleTeacher, req.AccountFields, ErrTeacherNotFound); err != nil {
			return err
		}
		subjects := req.Subjects
		if subjects == nil {
			subjects = []int{}
		}
		if err := tx.Teacher.Update(ctx, teacher, subjects); err != nil {
			return profileError(notFound(err, ErrTeacherNotFound))
		}
		return nil
	})
	if err != nil {
		return nil, s.logUnexpected("更新教师失败", err)
	}
	return s.GetTeacher(ctx, id)
}

func (s *peopleService) DeleteTeacher(ctx context.Context, id string) error {
	return s.deleteAccount(ctx, id, model.RoleTeacher, ErrTeacherNotFound)
}

func teacherFromRequest(req *dto.TeacherRequest) (*model.Teacher, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}
	return &model.Teacher{
		Username:  req.Username,
		Name:      req.Name,
		Surname:   req.Surname,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Img:       req.Img,
		BloodType: req.BloodType,
		Sex:       req.Sex,
		Birthday:  birthday,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// 学生
// ═══════════════════════════════════════════════════════════

func (s *peopleService) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	st, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrStudentNotFound)
	}
	return st, nil
}

func (s *peopleService) CreateStudent(ctx context.Context, actor Actor, req *dto.StudentRequest) (*model.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.CreatedBy = actor.auditID()
	student.UpdatedBy = actor.auditID()

	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkCapacity(ctx, tx, req.ClassID); err != nil {
			return err
		}
		id, err := createAccount(ctx, tx, req.AccountFields, model.RoleStudent)
		if err != nil {
			return err
		}
		student.ID = id
		if err := tx.Student.Create(ctx, student); err != nil {
			return profileError(err)
		}
		return nil
	})
	if err != nil {
		return nil, s.logUnexpected("创建学生失败", err)
	}

	s.logger.Info("学生已创建",
		zap.String("student_id", student.ID),
		zap.Int("class_id", student.ClassID),
		zap.String("operator", actor.ID),
	)
	return s.GetStudent(ctx, student.ID)
}

func (s *peopleService) UpdateStudent(ctx context.Context, actor Actor, id string, req *dto.StudentRequest) (*model.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.ID = id
	student.UpdatedBy = actor.auditID()

	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		current, err := tx.Student.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrStudentNotFound)
		}
		if current.ClassID != req.ClassID {
			if err := checkCapacity(ctx, tx, req.ClassID); err != nil {
				return err
			}
		}
		if err := updateAccount(ctx, tx, id, model.RoleStudent, req.AccountFields, ErrStudentNotFound); err != nil {
			return err
		}
		if err := tx.Student.Update(ctx, student); err != nil {
			return profileError(notFound(err, ErrStudentNotFound))
		}
		return nil
	})
	if err != nil {
		return nil, s.logUnexpected("更新学生失败", err)
	}
	return s.GetStudent(ctx, id)
}

func (s *peopleService) DeleteStudent(ctx context.Context, id string) error {
	return s.deleteAccount(ctx, id, model.RoleStudent, ErrStudentNotFound)
}

func studentFromRequest(req *dto.StudentRequest) (*model.Student, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}
	return &model.Student{
		Username:  req.Username,
		Name:      req.Name,
		Surname:   req.Surname,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Img:       req.Img,
		BloodType: req.BloodType,
		Sex:       req.Sex,
		Birthday:  birthday,
		ParentID:  req.ParentID,
		ClassID:   req.ClassID,
		GradeID:   req.GradeID,
	}, nil
}

// checkCapacity 锁定班级行后统计人数，已满返回 ErrClassFull
func checkCapacity(ctx context.Context, tx *repository.Repository, classID int) error {
	class, err := tx.Class.GetForUpdate(ctx, classID)
	if err != nil {
		return notFound(err, ErrClassNotFound)
	}
	n, err := tx.Class.CountStudents(ctx, classID)
	if err != nil {
		return err
	}
	if n >= int64(class.Capacity) {
		return ErrClassFull
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// 家长
// ═══════════════════════════════════════════════════════════

func (s *peopleService) GetParent(ctx context.Context, id string) (*model.Parent, error) {
	p, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrParentNotFound)
	}
	return p, nil
}

func (s *peopleService) CreateParent(ctx context.Context, actor Actor, req *dto.ParentRequest) (*model.Parent, error) {
	parent := parentFromRequest(req)
	parent.CreatedBy = actor.auditID()
	parent.UpdatedBy = actor.auditID()

	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		id, err := createAccount(ctx, tx, req.AccountFields, model.RoleParent)
		if err != nil {
			return err
		}
		parent.ID = id
		if err := tx.Parent.Create(ctx, parent); err != nil {
			return profileError(err)
		}
		return nil
	})
	if err != nil {
		return nil, s.logUnexpected("创建家长失败", err)
	}
	return s.GetParent(ctx, parent.ID)
}

func (s *peopleService) UpdateParent(ctx context.Context, actor Actor, id string, req *dto.ParentRequest) (*model.Parent, error) {
	parent := parentFromRequest(req)
	parent.ID = id
	parent.UpdatedBy = actor.auditID()

	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := updateAccount(ctx, tx, id, model.RoleParent, req.AccountFields, ErrParentNotFound); err != nil {
			return err
		}
		if err := tx.Parent.Update(ctx, parent); err != nil {
			return profileError(notFound(err, ErrParentNotFound))
		}
		return nil
	})
	if err != nil {
		return nil, s.logUnexpected("更新家长失败", err)
	}
	return s.GetParent(ctx, id)
}

func (s *peopleService) DeleteParent(ctx context.Context, id string) error {
	return s.deleteAccount(ctx, id, model.RoleParent, ErrParentNotFound)
}

func parentFromRequest(req *dto.ParentRequest) *model.Parent {
	return &model.Parent{
		Username: req.Username,
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}
}

// ═══════════════════════════════════════════════════════════
// 账号辅助
// ═══════════════════════════════════════════════════════════

func createAccount(ctx context.Context, tx *repository.Repository, fields dto.AccountFields, role string) (string, error) {
	if fields.Password == "" {
		return "", ErrPasswordRequired
	}
	hash, err := hashPassword(fields.Password)
	if err != nil {
		return "", err
	}
	account := &model.Account{Username: fields.Username, PasswordHash: hash, Role: role}
	if err := tx.Account.Create(ctx, account); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return "", ErrUsernameTaken
		}
		return "", err
	}
	return account.ID, nil
}

// updateAccount 校验账号存在且角色匹配，然后更新用户名与（可选的）密码
func updateAccount(ctx context.Context, tx *repository.Repository, id, role string, fields dto.AccountFields, missing error) error {
	account, err := tx.Account.GetByID(ctx, id)
	if err != nil {
		return notFound(err, missing)
	}
	if account.Role != role {
		return missing
	}

	var hash string
	if fields.Password != "" {
		if hash, err = hashPassword(fields.Password); err != nil {
			return err
		}
	}
	if err := tx.Account.UpdateCredentials(ctx, id, fields.Username, hash); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *peopleService) deleteAccount(ctx context.Context, id, role string, missing error) error {
	account, err := s.repo.Account.GetByID(ctx, id)
	if err != nil {
		return notFound(err, missing)
	}
	if account.Role != role {
		return missing
	}
	if err := s.repo.Account.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return ErrInUse
		}
		return s.logUnexpected("删除账号失败", notFound(err, missing))
	}
	s.logger.Info("账号已删除", zap.String("account_id", id), zap.String("role", role))
	return nil
}

func parseBirthday(raw string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return datatypes.Date{}, ErrInvalidBirthday
	}
	return datatypes.Date(t), nil
}

// profileError 档案表约束错误转为业务错误
func profileError(err error) error {
	switch {
	case pkgerrors.IsUniqueViolation(err):
		return ErrContactTaken
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	}
	return err
}

// notFound 将 gorm.ErrRecordNotFound 替换为模块自己的业务错误
func notFound(err, replacement error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return replacement
	}
	return err
}

// logUnexpected 业务错误原样返回，其余错误记录日志
func (s *peopleService) logUnexpected(msg string, err error) error {
	if isBusinessError(err) {
		return err
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

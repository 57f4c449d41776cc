package service

import (
	"errors"

	"brika-go/internal/model"
	"brika-go/internal/repository"
	"brika-go/pkg/hash"

	"gorm.io/gorm"
)

var (
	// ErrEmailTaken 表示注册邮箱已被占用。
	ErrEmailTaken = errors.New("邮箱已被注册")
	// ErrUserNotFound 表示目标用户不存在。
	ErrUserNotFound = errors.New("用户不存在")
	// ErrInvalidCredentials 表示邮箱或密码不正确。
	ErrInvalidCredentials = errors.New("邮箱或密码不正确")
)

// UserService 接口定义了用户相关的业务操作。
type UserService interface {
	Register(email, password, firstName, lastName string) (*model.User, error)
	// Login 校验邮箱和密码，成功时返回对应用户。
	Login(email, password string) (*model.User, error)
	GetByID(userID uint) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register 处理用户注册的业务逻辑。
func (s *userService) Register(email, password, firstName, lastName string) (*model.User, error) {
	// 1. 检查邮箱是否已被占用
	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验用户凭证。
// 邮箱不存在和密码错误返回同一个错误，不向调用方泄露账号是否存在。
func (s *userService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID 按 ID 取用户。
func (s *userService) GetByID(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

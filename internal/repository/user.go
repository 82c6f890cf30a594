package repository

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/user/watchbox/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrEmailTaken 邮箱已被注册
var ErrEmailTaken = errors.New("邮箱已被注册")

// 唯一约束冲突
const pqUniqueViolation = "23505"

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户，只返回不含密码的用户信息
func (r *UserRepository) Create(ctx context.Context, data model.SignupData) (*model.User, error) {
	// 密码哈希
	hash, err := HashPassword(data.Password)
	if err != nil {
		return nil, err
	}

	record := &model.UserRecord{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(data.Name),
		Email:        normalizeEmail(data.Email),
		PasswordHash: hash,
	}
	if g := strings.TrimSpace(data.FavouriteGenre); g != "" {
		record.FavouriteMovieGenre = &g
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		log.Printf("[Repository] 创建用户失败: %v", err)
		return nil, err
	}

	return record.ToUser(), nil
}

// VerifyLogin 校验登录凭证
// 用户不存在、密码错误或查询失败都返回 nil，调用方无法区分
func (r *UserRepository) VerifyLogin(ctx context.Context, data model.LoginData) *model.User {
	record, err := r.findRecordByEmail(ctx, normalizeEmail(data.Email))
	if err != nil {
		log.Printf("[Repository] 登录校验查询失败: %v", err)
		return nil
	}
	if record == nil {
		return nil
	}

	if !CheckPassword(record.PasswordHash, data.Password) {
		return nil
	}

	return record.ToUser()
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var record model.UserRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return record.ToUser(), nil
}

func (r *UserRepository) findRecordByEmail(ctx context.Context, email string) (*model.UserRecord, error) {
	var record model.UserRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 验证密码
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

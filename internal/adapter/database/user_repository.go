package database

import (
	"context"
	"errors"

	"github.com/ecopontos/ecopontos-api/internal/domain/model"
	"github.com/ecopontos/ecopontos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// UserRepository implementa repository.UserRepository sobre o GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser persiste um novo usuário
func (r *UserRepository) CreateUser(ctx context.Context, user *model.UserEntity) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// GetUserByEmail busca um usuário pelo e-mail, incluindo o hash da senha
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.UserEntity, error) {
	var user model.UserEntity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID busca um usuário pelo ID
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.UserEntity, error) {
	var user model.UserEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// UserRepository handles CRUD for users and their external identifiers.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate("create user", err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name *string
}

func (r *UserRepository) Update(ctx context.Context, id uint, patch UserPatch) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	if err := db.First(&user, id).Error; err != nil {
		return nil, translate("find user", err)
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, translate("update user", err)
	}
	return &user, nil
}

// Delete hard-deletes the user; dependent identifiers, tasks and task
// extensions are removed by the database cascade. A missing id is
// ErrNotFound, not a no-op.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if tx.Error != nil {
		return translate("delete user", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return translate("delete user", gorm.ErrRecordNotFound)
	}
	return nil
}

// AddIdentifier registers an external identity for the user. A duplicate
// (identifier, identifier_type) pair fails with ErrValidation.
func (r *UserRepository) AddIdentifier(ctx context.Context, ident *model.UserIdentifier) error {
	if err := r.db.WithContext(ctx).Create(ident).Error; err != nil {
		return translate("add user identifier", err)
	}
	return nil
}

// GetByIdentifier resolves a user from an external identity such as a
// telegram id.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier, identifierType string) (*model.User, error) {
	var ident model.UserIdentifier
	db := r.db.WithContext(ctx)
	err := db.Where("identifier = ? AND identifier_type = ?", identifier, identifierType).First(&ident).Error
	if err != nil {
		return nil, translate("find user identifier", err)
	}

	var user model.User
	if err := db.First(&user, ident.UserID).Error; err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) ListIdentifiers(ctx context.Context, userID uint) ([]model.UserIdentifier, error) {
	var idents []model.UserIdentifier
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&idents).Error
	if err != nil {
		return nil, translate("list user identifiers", err)
	}
	return idents, nil
}

func (r *UserRepository) RemoveIdentifier(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&model.UserIdentifier{}, id)
	if tx.Error != nil {
		return translate("remove user identifier", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return translate("remove user identifier", gorm.ErrRecordNotFound)
	}
	return nil
}

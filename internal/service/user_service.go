package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// UserInput carries the attributes required to register a user.
type UserInput struct {
	Name string `validate:"required,max=100"`
}

// IdentifierInput binds an external identity to a user.
type IdentifierInput struct {
	UserID         uint   `validate:"required"`
	Identifier     string `validate:"required,max=100"`
	IdentifierType string `validate:"required,max=50"`
}

// UserService validates input and delegates to the user repository.
type UserService struct {
	users    *repository.UserRepository
	validate *validator.Validate
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{
		users:    users,
		validate: validator.New(),
	}
}

func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}

	user := model.User{Name: input.Name}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) RenameUser(ctx context.Context, id uint, name string) (*model.User, error) {
	if err := s.validate.Var(name, "required,max=100"); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	return s.users.Update(ctx, id, repository.UserPatch{Name: &name})
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}

// AddIdentifier registers an external identity (e.g. a telegram id) for the
// user.
func (s *UserService) AddIdentifier(ctx context.Context, input IdentifierInput) (*model.UserIdentifier, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}

	ident := model.UserIdentifier{
		UserID:         input.UserID,
		Identifier:     input.Identifier,
		IdentifierType: input.IdentifierType,
	}
	if err := s.users.AddIdentifier(ctx, &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

// FindByIdentifier resolves a user from an external identity.
func (s *UserService) FindByIdentifier(ctx context.Context, identifier, identifierType string) (*model.User, error) {
	return s.users.GetByIdentifier(ctx, identifier, identifierType)
}

func (s *UserService) ListIdentifiers(ctx context.Context, userID uint) ([]model.UserIdentifier, error) {
	return s.users.ListIdentifiers(ctx, userID)
}

func (s *UserService) RemoveIdentifier(ctx context.Context, id uint) error {
	return s.users.RemoveIdentifier(ctx, id)
}

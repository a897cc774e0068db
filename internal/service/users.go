package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

// UserService is the admin-facing user management surface.
type UserService struct {
	users  storage.UserStore
	hasher SecretHasher
	log    logging.Logger
}

func NewUserService(users storage.UserStore, hasher SecretHasher, log logging.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, unexpected(ctx, s.log, "list users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	user, err := s.users.FindUserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, notFound(CodeUserNotFound, "User not found")
	}
	if err != nil {
		return models.User{}, unexpected(ctx, s.log, "find user", err)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
	return createUser(ctx, s.users, s.hasher, s.log, RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
}

// Update applies a partial profile change.
func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return models.User{}, invalidField(err)
	}
	return s.save(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.users.DeleteUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(CodeUserNotFound, "User not found")
	}
	if err != nil {
		return unexpected(ctx, s.log, "delete user", err)
	}
	return nil
}

func (s *UserService) Promote(ctx context.Context, id string) (models.User, error) {
	return s.setAdmin(ctx, id, true)
}

func (s *UserService) Demote(ctx context.Context, id string) (models.User, error) {
	return s.setAdmin(ctx, id, false)
}

func (s *UserService) setAdmin(ctx context.Context, id string, admin bool) (models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.IsAdmin = admin
	return s.save(ctx, user)
}

func (s *UserService) save(ctx context.Context, user models.User) (models.User, error) {
	updated, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, userWriteError(ctx, s.log, err)
	}
	return updated, nil
}

// createUser validates, hashes and stores a new account.
func createUser(ctx context.Context, users storage.UserStore, hasher SecretHasher, log logging.Logger, in RegisterInput) (models.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return models.User{}, invalid(CodeValidationFailed, "Please provide username, email and password")
	}
	user := models.User{Username: in.Username, Email: in.Email, IsAdmin: in.IsAdmin}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return models.User{}, invalidField(err)
	}
	if err := models.ValidatePassword(in.Password); err != nil {
		return models.User{}, invalidField(err)
	}

	if _, err := users.FindUserByEmail(ctx, user.Email); err == nil {
		return models.User{}, conflict(CodeUserExists, "email", "User with this email already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, unexpected(ctx, log, "find user", err)
	}
	if _, err := users.FindUserByUsername(ctx, user.Username); err == nil {
		return models.User{}, conflict(CodeUserExists, "username", "Username is already taken")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, unexpected(ctx, log, "find user", err)
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, unexpected(ctx, log, "hash password", err)
	}
	user.PasswordHash = hash

	created, err := users.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, userWriteError(ctx, log, err)
	}
	log.Info(ctx, "user created", "user_id", created.ID, "is_admin", created.IsAdmin)
	return created, nil
}

// userWriteError covers unique violations that slip past the pre-checks.
func userWriteError(ctx context.Context, log logging.Logger, err error) *Error {
	var ce *storage.ConflictError
	switch {
	case errors.As(err, &ce) && ce.Field == "username":
		return conflict(CodeUserExists, "username", "Username is already taken")
	case errors.Is(err, storage.ErrAlreadyExists):
		return conflict(CodeUserExists, "email", "User with this email already exists")
	case errors.Is(err, storage.ErrNotFound):
		return notFound(CodeUserNotFound, "User not found")
	default:
		return unexpected(ctx, log, "write user", err)
	}
}

// checkID rejects ids that cannot name any record.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid(CodeInvalidID, "Invalid id format")
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/repo"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/secrets"
	"go.uber.org/zap"
)

const minPasswordLen = 6

type UserService interface {
	List(ctx context.Context, f model.UserFilter) (Result[[]model.User], error)
	Get(ctx context.Context, id uint) (Result[*model.User], error)
	Create(ctx context.Context, in NewUser) (Result[*model.User], error)
	Update(ctx context.Context, id uint, patch model.UserPatch) (Result[*model.User], error)
	Delete(ctx context.Context, id uint) (Source, error)
	// Login checks credentials and returns the matching user.
	Login(ctx context.Context, email, password string) (Result[*model.User], error)
}

type NewUser struct {
	Name       string
	Email      string
	Role       model.Role
	Password   string
	Position   string
	Department string
	Avatar     string
}

type userService struct {
	r     repo.UserRepo
	store *mockstore.Store
	res   *Resolver
	log   *zap.Logger
}

func NewUserService(r repo.UserRepo, store *mockstore.Store, res *Resolver, log *zap.Logger) UserService {
	return &userService{r: r, store: store, res: res, log: log}
}

func (s *userService) List(ctx context.Context, f model.UserFilter) (Result[[]model.User], error) {
	return resolve(ctx, s.res, model.KindUser, "list",
		func(ctx context.Context) ([]model.User, error) { return s.r.List(ctx, f) },
		func() ([]model.User, error) { return s.store.Users.List(f.Match), nil })
}

func (s *userService) Get(ctx context.Context, id uint) (Result[*model.User], error) {
	return resolve(ctx, s.res, model.KindUser, "get",
		func(ctx context.Context) (*model.User, error) { return s.r.Get(ctx, id) },
		func() (*model.User, error) {
			u, ok := s.store.Users.Get(id)
			if !ok {
				return nil, apperr.NotFound("user", id)
			}
			return &u, nil
		})
}

func (s *userService) Create(ctx context.Context, in NewUser) (Result[*model.User], error) {
	if in.Role == "" {
		in.Role = model.RoleTeam
	}
	email := model.NormalizeEmail(in.Email)
	var fields []apperr.FieldError
	if in.Name == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Rule: "required", Msg: "name is required"})
	}
	if email == "" {
		fields = append(fields, apperr.FieldError{Field: "email", Rule: "required", Msg: "email is required"})
	}
	if len(in.Password) < minPasswordLen {
		fields = append(fields, apperr.FieldError{Field: "password", Rule: "min", Msg: fmt.Sprintf("password needs at least %d characters", minPasswordLen)})
	}
	if len(fields) > 0 {
		return Result[*model.User]{}, apperr.Validation("invalid user", fields...)
	}

	hash, err := secrets.HashPassword(in.Password)
	if err != nil {
		return Result[*model.User]{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		Name:         in.Name,
		Email:        email,
		Role:         in.Role,
		PasswordHash: hash,
		Position:     in.Position,
		Department:   in.Department,
		Avatar:       in.Avatar,
	}

	return resolve(ctx, s.res, model.KindUser, "create",
		func(ctx context.Context) (*model.User, error) {
			row := u
			if err := s.r.Create(ctx, &row); err != nil {
				if apperr.Is(err, apperr.KindConflict) {
					return nil, errEmailTaken(email)
				}
				return nil, err
			}
			return &row, nil
		},
		func() (*model.User, error) {
			if s.mockEmailTaken(email, 0) {
				return nil, errEmailTaken(email)
			}
			row := s.store.Users.Create(u)
			return &row, nil
		})
}

func (s *userService) Update(ctx context.Context, id uint, patch model.UserPatch) (Result[*model.User], error) {
	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLen {
			return Result[*model.User]{}, apperr.Validation("invalid user", apperr.FieldError{
				Field: "password", Rule: "min", Msg: fmt.Sprintf("password needs at least %d characters", minPasswordLen),
			})
		}
		hash, err := secrets.HashPassword(*patch.Password)
		if err != nil {
			return Result[*model.User]{}, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}

	return resolve(ctx, s.res, model.KindUser, "update",
		func(ctx context.Context) (*model.User, error) {
			u, err := s.r.Update(ctx, id, patch)
			if apperr.Is(err, apperr.KindConflict) && patch.Email != nil {
				return nil, errEmailTaken(*patch.Email)
			}
			return u, err
		},
		func() (*model.User, error) {
			if patch.Email != nil && s.mockEmailTaken(model.NormalizeEmail(*patch.Email), id) {
				return nil, errEmailTaken(*patch.Email)
			}
			u, ok := s.store.Users.Update(id, patch.ApplyTo)
			if !ok {
				return nil, apperr.NotFound("user", id)
			}
			return &u, nil
		})
}

func (s *userService) Delete(ctx context.Context, id uint) (Source, error) {
	return exec(ctx, s.res, model.KindUser, "delete",
		func(ctx context.Context) error { return s.r.Delete(ctx, id) },
		func() error {
			if !s.store.Users.Delete(id) {
				return apperr.NotFound("user", id)
			}
			return nil
		})
}

func (s *userService) Login(ctx context.Context, email, password string) (Result[*model.User], error) {
	f := model.UserFilter{Email: email}
	res, err := resolve(ctx, s.res, model.KindUser, "login",
		func(ctx context.Context) (*model.User, error) { return firstOf(s.r.List(ctx, f)) },
		func() (*model.User, error) { return firstOf(s.store.Users.List(f.Match), nil) })
	if err != nil {
		return res, err
	}
	if res.Data == nil || !secrets.CheckPassword(password, res.Data.PasswordHash) {
		return Result[*model.User]{Source: res.Source}, apperr.Unauthorized("invalid email or password")
	}
	return res, nil
}

// mockEmailTaken reports whether another user than self already uses email.
func (s *userService) mockEmailTaken(email string, self uint) bool {
	taken := s.store.Users.List(func(u model.User) bool {
		return u.Email == email && u.ID != self
	})
	return len(taken) > 0
}

func errEmailTaken(email string) error {
	return apperr.Conflict(fmt.Sprintf("email %s is already in use", model.NormalizeEmail(email)))
}

func firstOf[T any](items []T, err error) (*T, error) {
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

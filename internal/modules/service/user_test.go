package service

import (
	"context"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		primary  bool
		in       NewUser
		setup    func(*MockUserRepo)
		wantKind *apperr.Kind
		wantSrc  Source
	}{
		{
			name:     "mock store rejects duplicate email",
			in:       NewUser{Name: "Johnny", Email: "JOHN@example.com", Password: "secret1"},
			setup:    func(*MockUserRepo) {},
			wantKind: ptr(apperr.KindConflict),
		},
		{
			name:    "primary unique index becomes conflict",
			primary: true,
			in:      NewUser{Name: "Johnny", Email: "john@example.com", Password: "secret1"},
			setup: func(r *MockUserRepo) {
				r.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(apperr.Conflict("create user: duplicate value"))
			},
			wantKind: ptr(apperr.KindConflict),
		},
		{
			name:     "short password",
			in:       NewUser{Name: "Kim", Email: "kim@example.com", Password: "123"},
			setup:    func(*MockUserRepo) {},
			wantKind: ptr(apperr.KindValidation),
		},
		{
			name:    "fallback creates in mock store",
			primary: true,
			in:      NewUser{Name: "Kim", Email: " Kim@Example.com ", Password: "secret1"},
			setup: func(r *MockUserRepo) {
				r.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(errDown)
			},
			wantSrc: SourceMock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, tt.primary)
			tt.setup(e.users)

			res, err := e.userSvc.Create(ctx, tt.in)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.Equal(t, *tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSrc, res.Source)
			assert.Equal(t, "kim@example.com", res.Data.Email)
			assert.Equal(t, model.RoleTeam, res.Data.Role)
			assert.NotEqual(t, tt.in.Password, res.Data.PasswordHash)
			assert.True(t, secrets.CheckPassword(tt.in.Password, res.Data.PasswordHash))
		})
	}
}

func TestUserService_UpdateEmailClash(t *testing.T) {
	e := newEnv(t, false)

	_, err := e.userSvc.Update(context.Background(), 2, model.UserPatch{Email: ptr("jane@example.com")})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	// keeping one's own address is not a clash
	res, err := e.userSvc.Update(context.Background(), 2, model.UserPatch{Email: ptr("john@example.com"), Position: ptr("Lead")})
	require.NoError(t, err)
	assert.Equal(t, "Lead", res.Data.Position)
}

func TestUserService_UpdateHashesPassword(t *testing.T) {
	e := newEnv(t, true)
	e.users.On("Update", mock.Anything, uint(3), mock.MatchedBy(func(p model.UserPatch) bool {
		return p.Password == nil && p.PasswordHash != nil && secrets.CheckPassword("n3wpass", *p.PasswordHash)
	})).Return(&model.User{ID: 3}, nil)

	_, err := e.userSvc.Update(context.Background(), 3, model.UserPatch{Password: ptr("n3wpass")})
	require.NoError(t, err)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, false)

	res, err := e.userSvc.Login(ctx, "Jane@Example.com", "password123")
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Data.ID)

	_, err = e.userSvc.Login(ctx, "jane@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = e.userSvc.Login(ctx, "nobody@example.com", "password123")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

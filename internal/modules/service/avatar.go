package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/blob"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
)

// AvatarStore is the object storage used for user avatars.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, userID uint, fh *multipart.FileHeader) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

type AvatarService interface {
	// Upload stores the image and points the user's avatar at it.
	Upload(ctx context.Context, userID uint, fh *multipart.FileHeader) (Result[*model.User], error)
	// URL returns a download link for the user's avatar.
	URL(ctx context.Context, userID uint) (Result[string], error)
}

type avatarService struct {
	users UserService
	store AvatarStore
}

// NewAvatarService returns a service that answers Unavailable for every call
// when store is nil.
func NewAvatarService(users UserService, store AvatarStore) AvatarService {
	return &avatarService{users: users, store: store}
}

var errNoStorage = apperr.New(apperr.KindUnavailable, "avatar storage is not configured")

func (s *avatarService) Upload(ctx context.Context, userID uint, fh *multipart.FileHeader) (Result[*model.User], error) {
	if s.store == nil {
		return Result[*model.User]{}, errNoStorage
	}
	// fail on an unknown user before uploading anything
	if _, err := s.users.Get(ctx, userID); err != nil {
		return Result[*model.User]{}, err
	}

	meta, err := s.store.UploadAvatar(ctx, userID, fh)
	if err != nil {
		if errors.Is(err, blob.ErrUnsupportedType) {
			return Result[*model.User]{}, apperr.Validation(err.Error(),
				apperr.FieldError{Field: "file", Rule: "mimetype", Msg: err.Error()})
		}
		return Result[*model.User]{}, apperr.Wrap(apperr.KindUnavailable, "upload avatar", err)
	}
	return s.users.Update(ctx, userID, model.UserPatch{Avatar: &meta.Key})
}

func (s *avatarService) URL(ctx context.Context, userID uint) (Result[string], error) {
	if s.store == nil {
		return Result[string]{}, errNoStorage
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return Result[string]{Source: u.Source}, err
	}
	if u.Data.Avatar == "" {
		return Result[string]{Source: u.Source}, apperr.New(apperr.KindNotFound, "user has no avatar")
	}
	url, err := s.store.PresignGet(ctx, u.Data.Avatar)
	if err != nil {
		return Result[string]{Source: u.Source}, apperr.Wrap(apperr.KindUnavailable, "presign avatar", err)
	}
	return Result[string]{Data: url, Source: u.Source}, nil
}

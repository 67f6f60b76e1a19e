package service

import (
	"context"

	"foodgram/internal/imaging"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const avatarImageDir = "avatars"

// UserService owns account lifecycle: signup, credential checks,
// password changes and avatars.
type UserService struct {
	userRepo repository.UserRepository
	decoder  *imaging.Decoder
}

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

func NewUserService(userRepo repository.UserRepository, decoder *imaging.Decoder) *UserService {
	return &UserService{userRepo: userRepo, decoder: decoder}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewFieldValidationError("email", err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewFieldValidationError("username", err.Error())
	}
	if err := validation.ValidateName("first_name", in.FirstName); err != nil {
		return nil, models.NewFieldValidationError("first_name", err.Error())
	}
	if err := validation.ValidateName("last_name", in.LastName); err != nil {
		return nil, models.NewFieldValidationError("last_name", err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewFieldValidationError("password", err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewFieldValidationError("email", "A user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the email/password pair. The same error covers
// an unknown email and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SetPassword changes the password after verifying the current one.
func (s *UserService) SetPassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return models.NewFieldValidationError("current_password", "Current password is incorrect")
	}
	if err := validation.ValidatePassword(next); err != nil {
		return models.NewFieldValidationError("new_password", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// SetAvatar decodes the data URI and stores it as the user's avatar,
// replacing any previous file.
func (s *UserService) SetAvatar(ctx context.Context, userID uint, dataURI string) (*models.User, error) {
	if dataURI == "" {
		return nil, models.NewFieldValidationError("avatar", "Avatar is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.decoder.Decode(dataURI, avatarImageDir)
	if err != nil {
		return nil, models.NewFieldValidationError("avatar", err.Error())
	}
	if err := s.userRepo.UpdateAvatar(ctx, userID, path); err != nil {
		_ = s.decoder.Remove(path)
		return nil, err
	}
	if user.Avatar != "" {
		_ = s.decoder.Remove(user.Avatar)
	}

	user.Avatar = path
	return user, nil
}

// DeleteAvatar clears the avatar and removes its file.
func (s *UserService) DeleteAvatar(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateAvatar(ctx, userID, ""); err != nil {
		return err
	}
	if user.Avatar != "" {
		_ = s.decoder.Remove(user.Avatar)
	}
	return nil
}

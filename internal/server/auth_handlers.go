package server

import (
	"foodgram/internal/models"
	"foodgram/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type signupRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/users
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validate.Struct(&req); err != nil {
		return models.RespondWithAppError(c, validationFieldsError(err))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// the signup response never carries is_subscribed=true
	return c.Status(fiber.StatusCreated).JSON(user.View(false, s.mediaURL))
}

// Login handles POST /api/auth/token/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validate.Struct(&req); err != nil {
		return models.RespondWithAppError(c, validationFieldsError(err))
	}

	user, err := s.userService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"auth_token": token,
	})
}

// Logout handles POST /api/auth/token/logout. Tokens are stateless, so
// this only acknowledges; clients drop the token.
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// validationFieldsError converts validator.ValidationErrors into the
// field-keyed AppError shape the API responds with.
func validationFieldsError(err error) *models.AppError {
	appErr := models.NewValidationError("Invalid request payload")
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			appErr.WithField(jsonFieldName(fe.Field()), "failed on "+fe.Tag()+" validation")
		}
	}
	return appErr
}

// jsonFieldName maps struct field names to their JSON counterparts.
func jsonFieldName(field string) string {
	switch field {
	case "Email":
		return "email"
	case "Username":
		return "username"
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Password":
		return "password"
	case "CurrentPassword":
		return "current_password"
	case "NewPassword":
		return "new_password"
	case "Avatar":
		return "avatar"
	}
	return field
}

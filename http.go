package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// AuthControllerRoutes are the paths the controller mounts
type AuthControllerRoutes struct {
	Login    string
	Logout   string
	Register string
	Me       string
}

// AuthController exposes the authentication subsystem over HTTP. All
// responses are JSON; expected failures map to the error taxonomy, never
// to leaked internals.
type AuthController struct {
	Logger Logger
	Auth   Authenticator
	Guard  *SessionGuard
	Repo   RepositoryManager
	Routes *AuthControllerRoutes
}

// NewAuthController returns a controller with the default route table
func NewAuthController(auther Authenticator, guard *SessionGuard, repo RepositoryManager) *AuthController {
	return &AuthController{
		Logger: defLogger{},
		Auth:   auther,
		Guard:  guard,
		Repo:   repo,
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Logout:   "/auth/logout",
			Register: "/auth/register",
			Me:       "/auth/me",
		},
	}
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterAuthRoutes mounts the auth endpoints on the given router
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Register, controller.RegistrationCreate)
	app.Post(controller.Routes.Logout, controller.LogoutPost)
	app.Get(controller.Routes.Me, controller.Me)
}

// LoginPayload is the credentials body for LoginPost
type LoginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate will validate the payload
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginPost verifies credentials and returns a fresh session token plus
// the identity snapshot embedded in it.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	token, err := a.Auth.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return a.writeError(c, err)
	}

	session, err := a.Auth.SessionFromToken(token)
	if err != nil {
		return a.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":    session.GetUserID(),
			"email": session.GetEmail(),
			"name":  session.GetName(),
			"role":  session.GetRole(),
		},
	})
}

// RegistrationPayload is the body for RegistrationCreate
type RegistrationPayload struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	StoreName       string `json:"store_name" form:"store_name"`
	StoreAddress    string `json:"store_address" form:"store_address"`
}

// Validate will validate the payload
func (r RegistrationPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
		validation.Field(&r.StoreName, validation.Length(0, 200)),
	)
}

// RegistrationCreate registers a customer, or a vendor when store
// details are present.
func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegistrationPayload)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	handler := NewRegisterUserHandler(a.Repo)
	user, err := handler.Execute(c.UserContext(), RegisterUserMessage{
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Password:     payload.Password,
		StoreName:    payload.StoreName,
		StoreAddress: payload.StoreAddress,
	})
	if err != nil {
		a.Logger.Error("register user", "error", err)
		return a.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// Me authenticates the request and returns the live user record, not the
// token snapshot.
func (a *AuthController) Me(c *fiber.Ctx) error {
	user, _, err := a.Guard.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return a.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// LogoutPost exists for client symmetry. Sessions are stateless, so
// there is nothing to invalidate server side; clients discard their
// stored token.
func (a *AuthController) LogoutPost(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (a *AuthController) writeError(c *fiber.Ctx, err error) error {
	return WriteHTTPError(c, a.Logger, err)
}

// WriteHTTPError translates the error taxonomy to an HTTP status and a
// short JSON body. Uncategorized errors read as a generic failure.
func WriteHTTPError(c *fiber.Ctx, logger Logger, err error) error {
	if logger == nil {
		logger = defLogger{}
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		logger.Error("unexpected auth error", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrAuthenticationFailed.Message,
		})
	}

	status := fiber.StatusInternalServerError
	message := ErrAuthenticationFailed.Message

	switch richErr.Category {
	case errors.CategoryAuth:
		status = fiber.StatusUnauthorized
		message = richErr.Message
	case errors.CategoryAuthz:
		status = fiber.StatusForbidden
		message = richErr.Message
	case errors.CategoryNotFound:
		status = fiber.StatusNotFound
		message = richErr.Message
	case errors.CategoryRateLimit:
		status = fiber.StatusTooManyRequests
		message = richErr.Message
	case errors.CategoryValidation, errors.CategoryBadInput:
		status = fiber.StatusBadRequest
		message = richErr.Message
	case errors.CategoryConflict:
		status = fiber.StatusConflict
		message = richErr.Message
	default:
		logger.Error("auth internal error", "error", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match", errors.CategoryValidation)
		}
		return nil
	}
}

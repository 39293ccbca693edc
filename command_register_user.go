package auth

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"
)

// DefaultPhoneRegion is the region vendor/customer phone numbers are
// parsed against when no country code is given.
var DefaultPhoneRegion = "IN"

// RegisterUserMessage carries a registration request. Vendor fields are
// optional; when StoreName is set the account is registered as a vendor.
type RegisterUserMessage struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	Password     string `json:"password"`
	StoreName    string `json:"store_name"`
	StoreAddress string `json:"store_address"`
	UseHashid    bool   `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// RegisterUserHandler creates the account inside a transaction: hash the
// password, normalize the phone number, derive the id, insert.
type RegisterUserHandler struct {
	repo RepositoryManager
}

// NewRegisterUserHandler returns a handler bound to the given repositories
func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.PasswordHash = hash
		user.Email = event.Email
		user.Name = event.Name
		user.StoreName = event.StoreName
		user.StoreAddress = event.StoreAddress

		user.Phone, err = normalizePhone(event.Phone)
		if err != nil {
			return err
		}

		user.Role = registrationRole(event)

		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return user, nil
}

// registrationRole picks the account role: explicit when valid, vendor
// when store details are present, customer otherwise. Admin accounts are
// never created through public registration.
func registrationRole(event RegisterUserMessage) UserRole {
	if role, ok := ParseRole(event.Role); ok && role != RoleAdmin {
		return role
	}

	if strings.TrimSpace(event.StoreName) != "" {
		return RoleVendor
	}

	return RoleCustomer
}

// normalizePhone formats the number to E.164. Empty input is allowed;
// unparseable or invalid numbers are rejected.
func normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid phone number")
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", goerrors.New("invalid phone number", goerrors.CategoryValidation)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
	"github.com/dmitrijs2005/snackkiosk/internal/cryptox"
)

// AuthService covers who is at the kiosk: login, PIN management, the login
// grid and the admin unlock.
//
// Contract:
//   - SetPin rejects pins shorter than common.MinPinLength with
//     common.ErrPinTooShort and never calls the backend for them.
//   - VerifyAdmin returns common.ErrIncorrectAdmin on a wrong code. With a
//     configured bcrypt hash the check is local, otherwise it is relayed to
//     the backend.
type AuthService interface {
	Login(ctx context.Context, userID int64, pin string) (*models.Session, error)
	SetPin(ctx context.Context, userID int64, pin string) error
	RemovePin(ctx context.Context, userID int64) error
	VerifyAdmin(ctx context.Context, code string) error
	Users(ctx context.Context) ([]models.UserTile, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService over a backend Client. A non-empty
// adminHash makes admin verification local.
type authService struct {
	client    client.Client
	adminHash string
	flight    singleflight.Group
}

// NewAuthService constructs an AuthService bound to the given client and
// optional bcrypt admin hash.
func NewAuthService(client client.Client, adminHash string) AuthService {
	return &authService{client: client, adminHash: adminHash}
}

func (a *authService) Login(ctx context.Context, userID int64, pin string) (*models.Session, error) {
	key := "login:" + strconv.FormatInt(userID, 10) + ":" + pin
	s, err := do(&a.flight, key, func() (*models.Session, error) {
		return a.client.Login(ctx, userID, pin)
	})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	// callers mutate the session in place, so coalesced callers get copies
	cp := *s
	return &cp, nil
}

func (a *authService) SetPin(ctx context.Context, userID int64, pin string) error {
	if len(pin) < common.MinPinLength {
		return common.ErrPinTooShort
	}
	key := "set_pin:" + strconv.FormatInt(userID, 10) + ":" + pin
	_, err := do(&a.flight, key, func() (struct{}, error) {
		return struct{}{}, a.client.SetPin(ctx, userID, pin)
	})
	if err != nil {
		return fmt.Errorf("set pin error: %w", err)
	}
	return nil
}

func (a *authService) RemovePin(ctx context.Context, userID int64) error {
	key := "remove_pin:" + strconv.FormatInt(userID, 10)
	_, err := do(&a.flight, key, func() (struct{}, error) {
		return struct{}{}, a.client.RemovePin(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("remove pin error: %w", err)
	}
	return nil
}

func (a *authService) VerifyAdmin(ctx context.Context, code string) error {
	if code == "" {
		return common.ErrIncorrectAdmin
	}

	if a.adminHash != "" {
		ok, err := cryptox.CheckAdminCode(a.adminHash, code)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrIncorrectAdmin
		}
		return nil
	}

	err := a.client.VerifyAdmin(ctx, code)
	if errors.Is(err, client.ErrRejected) {
		return common.ErrIncorrectAdmin
	}
	if err != nil {
		return fmt.Errorf("admin verify error: %w", err)
	}
	return nil
}

func (a *authService) Users(ctx context.Context) ([]models.UserTile, error) {
	return do(&a.flight, "users", func() ([]models.UserTile, error) {
		return a.client.Users(ctx)
	})
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

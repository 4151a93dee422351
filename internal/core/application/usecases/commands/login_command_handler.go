package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ErrInvalidCredentials is returned for an unknown user, a wrong password and
// an inactive account alike.
var ErrInvalidCredentials = errs.NewUnauthenticatedError("invalid username or password")

// LoginResult carries the issued bearer token and the authenticated user.
type LoginResult struct {
	Token  string
	Claims ports.Claims
	User   *user.User
}

type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
	recorder   AuditRecorder
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	recorder AuditRecorder,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		recorder:   recorder,
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, command LoginCommand) (LoginResult, error) {
	if err := command.Validate(); err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().GetByUsername(ctx, command.Username())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if !u.IsActive() {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err = h.hasher.Compare(u.PasswordHash(), command.password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, claims, err := h.tokens.Issue(u)
	if err != nil {
		return LoginResult{}, err
	}

	actor := access.Actor{UserID: u.ID(), Username: u.Username(), Role: u.Role(), IPAddress: command.ipAddress}
	h.recorder.Record(ctx, actor, activity.Login, fmt.Sprintf("User %s logged in", u.Username()))

	return LoginResult{Token: token, Claims: claims, User: u}, nil
}

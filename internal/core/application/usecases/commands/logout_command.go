package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

// LogoutCommand revokes the bearer token the actor authenticated with.
type LogoutCommand struct {
	actor     access.Actor
	tokenID   string
	expiresAt time.Time
	guard     guard.ConstructorGuard
}

func NewLogoutCommand(actor access.Actor, tokenID string, expiresAt time.Time) (LogoutCommand, error) {
	if tokenID == "" {
		return LogoutCommand{}, errs.NewValueIsRequiredError("token id")
	}
	return LogoutCommand{actor: actor, tokenID: tokenID, expiresAt: expiresAt, guard: guard.NewConstructorGuard()}, nil
}

func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}

type LogoutCommandHandler struct {
	revocations ports.TokenRevocations
	recorder    AuditRecorder
}

func NewLogoutCommandHandler(revocations ports.TokenRevocations, recorder AuditRecorder) LogoutCommandHandler {
	return LogoutCommandHandler{revocations: revocations, recorder: recorder}
}

func (h LogoutCommandHandler) Handle(ctx context.Context, command LogoutCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if err := h.revocations.Revoke(ctx, command.tokenID, command.expiresAt); err != nil {
		return err
	}

	h.recorder.Record(ctx, command.actor, activity.Logout,
		fmt.Sprintf("User %s logged out", command.actor.Username))

	return nil
}

package authbridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/taskline/bridge/scaffolding/errs"
	"github.com/jrazmi/taskline/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/taskline/bridge/scaffolding/mid"
	"github.com/jrazmi/taskline/core/cases/authcase"
	"github.com/jrazmi/taskline/infrastructure/web"
	"github.com/jrazmi/taskline/sdk/logger"
)

type bridge struct {
	log  *logger.Logger
	auth *authcase.Service
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		log:  cfg.Log,
		auth: cfg.Service,
	}
}

func (b *bridge) httpRegister(ctx context.Context, r *http.Request) web.Encoder {
	var input RegisterInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	session, err := b.auth.Register(ctx, authcase.Register{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return toError(err)
	}

	return web.NewJSONResponseWithStatus(MarshalSession(session), http.StatusCreated)
}

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var input LoginInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	session, err := b.auth.Login(ctx, authcase.Login{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return toError(err)
	}

	return web.NewJSONResponse(MarshalSession(session))
}

func (b *bridge) httpLogout(ctx context.Context, r *http.Request) web.Encoder {
	if err := b.auth.Logout(ctx, mid.GetToken(ctx)); err != nil {
		return toError(err)
	}

	return fopbridge.NewCodeResponse("logged_out", "Logged out successfully")
}

func toError(err error) *errs.Error {
	switch {
	case errors.Is(err, authcase.ErrInvalidInput):
		return errs.New(errs.InvalidArgument, err)
	case errors.Is(err, authcase.ErrEmailTaken):
		return errs.Newf(errs.InvalidArgument, "email already registered")
	case errors.Is(err, authcase.ErrInvalidCredentials):
		return errs.Newf(errs.Unauthenticated, "invalid email or password")
	case errors.Is(err, authcase.ErrUnauthenticated):
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}
	return errs.Newf(errs.InternalOnlyLog, "%s", err)
}

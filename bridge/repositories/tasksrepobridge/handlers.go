package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/taskline/bridge/scaffolding/errs"
	"github.com/jrazmi/taskline/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/taskline/bridge/scaffolding/mid"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/core/timeline"
	"github.com/jrazmi/taskline/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	ownerID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}

	tasks, err := b.taskRepository.List(ctx, ownerID)
	if err != nil {
		return toError(err)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	ownerID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}

	qp := parsePath(r)

	task, err := b.taskRepository.Get(ctx, ownerID, qp.TaskID)
	if err != nil {
		return toError(err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	ownerID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}

	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	task, err := b.taskRepository.Create(ctx, ownerID, MarshalCreateToRepository(input))
	if err != nil {
		return toError(err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	ownerID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}

	qp := parsePath(r)

	var input UpdateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	task, err := b.taskRepository.Update(ctx, ownerID, qp.TaskID, MarshalUpdateToRepository(input))
	if err != nil {
		return toError(err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	ownerID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}

	qp := parsePath(r)

	if err := b.taskRepository.Delete(ctx, ownerID, qp.TaskID); err != nil {
		return toError(err)
	}

	return fopbridge.NewCodeResponse("deleted", "Task deleted successfully")
}

func (b *bridge) httpTimeline(ctx context.Context, r *http.Request) web.Encoder {
	ownerID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}

	tasks, err := b.taskRepository.List(ctx, ownerID)
	if err != nil {
		return toError(err)
	}

	chart := timeline.Build(tasks, b.now())

	return web.NewJSONResponse(MarshalTimelineToBridge(chart))
}

// toError maps repository errors onto the HTTP error taxonomy. Anything
// unrecognized is logged but reported to the client as a bare 500.
func toError(err error) *errs.Error {
	var verr *tasksrepo.ValidationError
	switch {
	case errors.As(err, &verr):
		return errs.New(errs.InvalidArgument, verr)
	case errors.Is(err, tasksrepo.ErrNotFound):
		return errs.Newf(errs.NotFound, "task not found")
	case errors.Is(err, tasksrepo.ErrMissingOwner):
		return errs.Newf(errs.Unauthenticated, "authentication required")
	}
	return errs.Newf(errs.InternalOnlyLog, "%s", err)
}

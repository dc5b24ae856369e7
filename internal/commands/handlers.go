package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/taskwall/internal/lifecycle"
	"github.com/sandeepkv93/taskwall/internal/model"
	"github.com/sandeepkv93/taskwall/internal/storage"
)

// NewHandlers binds the task and preference verbs to a manager and preference store.
// Filter is left nil; it only means something to an interactive board.
func NewHandlers(ctx context.Context, mgr *lifecycle.Manager, prefs *storage.PreferenceStore) Handlers {
	h := Handlers{
		Add: func(a AddArgs) (Result, error) {
			task, err := mgr.Create(ctx, lifecycle.Draft{
				Text: a.Text, Date: a.Date, Time: a.Time, Meridiem: a.Meridiem,
				Category: a.Category, Color: a.Color,
			})
			if err != nil {
				if isInputError(err) {
					return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: UserMessage(err)}
				}
				return Result{}, err
			}
			return Result{Message: fmt.Sprintf("added task %d: %s", task.ID, task.Text)}, nil
		},
		Done: func(a TargetArgs) (Result, error) {
			return applyToTask(ctx, mgr, a.ID, "toggled", mgr.ToggleDone)
		},
		Remove: func(a TargetArgs) (Result, error) {
			return applyToTask(ctx, mgr, a.ID, "moved to recycle bin", mgr.SoftDelete)
		},
		Restore: func(a TargetArgs) (Result, error) {
			return applyToTask(ctx, mgr, a.ID, "restored", mgr.Restore)
		},
		Purge: func(a TargetArgs) (Result, error) {
			return applyToTask(ctx, mgr, a.ID, "deleted forever", mgr.PermanentlyDelete)
		},
	}
	if prefs == nil {
		return h
	}
	h.Notify = func(a NotifyArgs) (Result, error) {
		if err := prefs.SetNotificationsEnabled(ctx, a.Enabled); err != nil {
			return Result{}, err
		}
		if a.Enabled {
			return Result{Message: "notifications on"}, nil
		}
		return Result{Message: "notifications off"}, nil
	}
	h.Theme = func(a ThemeArgs) (Result, error) {
		if err := prefs.SetTheme(ctx, a.Theme); err != nil {
			return Result{}, err
		}
		return Result{Message: "theme: " + string(a.Theme)}, nil
	}
	return h
}

// applyToTask runs op for a known id. The manager treats unknown ids as a no-op;
// commands report them instead.
func applyToTask(ctx context.Context, mgr *lifecycle.Manager, id int64, verb string, op func(context.Context, int64) error) (Result, error) {
	all, err := mgr.Tasks(ctx)
	if err != nil {
		return Result{}, err
	}
	i := model.Find(all, id)
	if i < 0 {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %d", id)}
	}
	if err := op(ctx, id); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("%s: %s", verb, all[i].Text)}, nil
}

func isInputError(err error) bool {
	return errors.Is(err, model.ErrEmptyText) ||
		errors.Is(err, model.ErrMissingDateTime) ||
		errors.Is(err, model.ErrInvalidDateTime) ||
		errors.Is(err, model.ErrDeadlineInPast)
}

// UserMessage turns task validation errors into the text shown next to the input.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyText):
		return "please enter a task"
	case errors.Is(err, model.ErrMissingDateTime):
		return "please select a date and time"
	case errors.Is(err, model.ErrInvalidDateTime):
		return "invalid date or time; use YYYY-MM-DD and h:mm"
	case errors.Is(err, model.ErrDeadlineInPast):
		return "deadline must be in the future"
	default:
		return err.Error()
	}
}

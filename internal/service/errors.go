package service

import (
	"log/slog"

	"github.com/weeklybite/weeklybite/internal/errors"
)

// fail logs err and returns it surfaced under msg. The code of err is kept,
// so an unavailable store still reads as UNAVAILABLE to the caller.
func fail(logger *slog.Logger, err error, msg string, args ...any) error {
	logger.Error(msg, append(args, "error", err)...)
	return errors.Surface(err, msg)
}

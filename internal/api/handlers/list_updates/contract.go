package list_updates

import (
	"context"

	"github.com/jhcsc-org/jhcsc-venue/internal/service/updates"
)

type UpdatesService interface {
	List(ctx context.Context, req *updates.ListRequest) (*updates.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

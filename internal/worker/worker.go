package worker

import (
	"context"

	"github.com/firstlight/backend/internal/service"
)

type Workers struct {
	OtpReaper OtpReaper
}

type Deps struct {
	Services *service.Services
}

type OtpReaper interface {
	Reap(ctx context.Context, source string) (int64, error)
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		OtpReaper: newOtpReaper(deps.Services.Otps),
	}
}

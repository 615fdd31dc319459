package auth

import (
	"github.com/tedxmekong/stagehub/internal/auth/repository"
	"github.com/tedxmekong/stagehub/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

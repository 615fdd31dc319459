package learning

import (
	"github.com/tedxmekong/stagehub/internal/learning/repository"
	"github.com/tedxmekong/stagehub/internal/learning/service"
	"go.uber.org/fx"
)

var Module = fx.Module("learning.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

package mentor

import (
	"github.com/tedxmekong/stagehub/internal/mentor/repository"
	"github.com/tedxmekong/stagehub/internal/mentor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mentor.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

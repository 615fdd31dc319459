package offering

import (
	"github.com/tedxmekong/stagehub/internal/offering/repository"
	"github.com/tedxmekong/stagehub/internal/offering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("offering.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

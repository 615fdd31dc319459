package discount

import (
	"github.com/tedxmekong/stagehub/internal/discount/repository"
	"github.com/tedxmekong/stagehub/internal/discount/service"
	"go.uber.org/fx"
)

var Module = fx.Module("discount.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

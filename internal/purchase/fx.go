package purchase

import (
	"github.com/tedxmekong/stagehub/internal/purchase/repository"
	"github.com/tedxmekong/stagehub/internal/purchase/service"
	"go.uber.org/fx"
)

var Module = fx.Module("purchase.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

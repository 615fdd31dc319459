package order

import (
	"github.com/tedxmekong/stagehub/internal/order/repository"
	"github.com/tedxmekong/stagehub/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

package cart

import (
	"github.com/tedxmekong/stagehub/internal/cart/repository"
	"github.com/tedxmekong/stagehub/internal/cart/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cart.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

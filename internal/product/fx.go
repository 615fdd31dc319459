package product

import (
	"github.com/tedxmekong/stagehub/internal/product/repository"
	"github.com/tedxmekong/stagehub/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

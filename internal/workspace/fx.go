package workspace

import (
	"github.com/tedxmekong/stagehub/internal/workspace/repository"
	"github.com/tedxmekong/stagehub/internal/workspace/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workspace.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

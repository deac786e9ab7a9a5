package storage

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/config"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	storagedomain "github.com/smallbiznis/storefront/internal/storage/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("storage",
	fx.Provide(
		NewStorage,
		func(s storagedomain.Storage) catalogdomain.Repository { return s },
		func(s storagedomain.Storage) orderdomain.Repository { return s },
		func(s storagedomain.Storage) inquirydomain.Repository { return s },
		func(s storagedomain.Storage) userdomain.Repository { return s },
	),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Node      *snowflake.Node
}

func NewStorage(p Params) (storagedomain.Storage, error) {
	log := p.Log.Named("storage")
	store, err := Open(context.Background(), p.Config, log, p.Node)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("closing storage", zap.String("backend", store.Backend()))
			return store.Close()
		},
	})
	return store, nil
}

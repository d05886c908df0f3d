//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/hayeah/picktree/internal/listing"
)

func InitApp(args Args) (*App, func(), error) {
	wire.Build(
		ProvideRootDir,
		ProvidePaths,
		ProvideLogger,
		ProvideStore,
		ProvideRules,
		ProvideLister,
		wire.Bind(new(EntryLister), new(*listing.Lister)),
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

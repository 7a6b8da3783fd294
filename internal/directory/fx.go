package directory

import "go.uber.org/fx"

var Module = fx.Module("directory.client",
	fx.Provide(NewHTTPClient),
)

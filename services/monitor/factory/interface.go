package factory

import "context"

// Engine defines the monitor's cycle operation
type Engine interface {
	Process(ctx context.Context)
	IsInterfaceNil() bool
}

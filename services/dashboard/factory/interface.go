package factory

// Server defines the web server operations
type Server interface {
	Start()
	Address() string
	Close() error
}

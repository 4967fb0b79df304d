// Package ports defines the interfaces between the scanning core and its adapters.
package ports

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Debug(msg string)
	Error(err error)
}

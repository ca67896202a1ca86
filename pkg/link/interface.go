package link

// Device defines the interface for logger devices the monitor can tail
// (real serial hardware or the mock).
type Device interface {
	Connect() error
	Close() error
	Records() <-chan Record
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)

package communication

import (
	"checkers/communication/protocol"
	"context"

	"github.com/pkg/errors"
)

// ErrClosed is returned by Receive once the communicator has been closed.
var ErrClosed = errors.New("communicator closed")

// Communicator is an interface that abstracts the communication mechanism.
type Communicator interface {
	// Receive blocks until the next message arrives or ctx is done. A message that could not be decoded
	// surfaces as an error wrapping protocol.ErrMalformed, later messages are still delivered.
	Receive(ctx context.Context) (protocol.Message, error)
	Send(msg protocol.Message) error
	Close() error
}

package communication

import (
	"checkers/communication/protocol"
	"sync"

	"github.com/pkg/errors"
)

var ErrUnknownProtocol = errors.New("unknown protocol")

// Handler answers one inbound message with zero or more outbound messages.
type Handler func(msg protocol.Message) ([]protocol.Message, error)

// Dispatcher routes messages to the handler registered for their header.
type Dispatcher struct {
	handlers map[protocol.Header]Handler
	mutex    sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[protocol.Header]Handler)}
}

// Register replaces any handler already registered for header.
func (d *Dispatcher) Register(header protocol.Header, handler Handler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.handlers[header] = handler
}

func (d *Dispatcher) Dispatch(msg protocol.Message) ([]protocol.Message, error) {
	d.mutex.RLock()
	handler, ok := d.handlers[msg.Header]
	d.mutex.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProtocol, "header %q", msg.Header)
	}
	return handler(msg)
}

package client

import (
	"checkers/communication"
	"checkers/communication/protocol"
	"checkers/meta"
	"context"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout    = 5 * time.Second
	readTimeout    = 10 * time.Second
	maxMessageSize = 1 << 20
)

type received struct {
	msg protocol.Message
	err error
}

// Bridge exchanges envelopes with the game over TCP. Every inbound connection carries one message,
// read until the peer closes it. Every outbound message is written on a fresh connection.
type Bridge struct {
	listener       net.Listener
	outbound       string
	inbox          chan received
	done           chan struct{}
	once           sync.Once
	readTimeout    time.Duration
	maxMessageSize int64
}

type Option func(b *Bridge)

// WithReadTimeout bounds how long a peer may take to send its message and close the connection.
func WithReadTimeout(timeout time.Duration) Option {
	return func(b *Bridge) {
		if timeout > 0 {
			b.readTimeout = timeout
		}
	}
}

func WithMaxMessageSize(size int64) Option {
	return func(b *Bridge) {
		if size > 0 {
			b.maxMessageSize = size
		}
	}
}

// NewBridge starts listening on the configured inbound port.
func NewBridge(config meta.BridgeConfig, options ...Option) (*Bridge, error) {
	return Listen(
		net.JoinHostPort(config.Host, strconv.Itoa(config.InboundPort)),
		net.JoinHostPort(config.Host, strconv.Itoa(config.OutboundPort)),
		options...,
	)
}

func Listen(inbound, outbound string, options ...Option) (*Bridge, error) {
	listener, err := net.Listen("tcp", inbound)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %s", inbound)
	}
	b := &Bridge{
		listener:       listener,
		outbound:       outbound,
		inbox:          make(chan received, 16),
		done:           make(chan struct{}),
		readTimeout:    readTimeout,
		maxMessageSize: maxMessageSize,
	}
	for _, option := range options {
		option(b)
	}
	go b.accept()
	log.Info().Msgf("Bridge listening on %s, sending to %s", listener.Addr(), outbound)
	return b, nil
}

// Addr is the address the bridge listens on.
func (b *Bridge) Addr() net.Addr {
	return b.listener.Addr()
}

func (b *Bridge) accept() {
	var readers sync.WaitGroup
	defer func() {
		readers.Wait()
		close(b.inbox)
	}()

	for {
		conn, err := b.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Error().Err(err).Msg("Bridge stopped accepting")
			}
			return
		}
		readers.Add(1)
		go func() {
			defer readers.Done()
			r := b.read(conn)
			select {
			case b.inbox <- r:
			case <-b.done:
				// Closed with nobody receiving, drop the message
			}
		}()
	}
}

// read takes one message from conn. A peer that neither closes the connection within the read timeout
// nor keeps under the size limit gets an error instead of a message.
func (b *Bridge) read(conn net.Conn) received {
	defer conn.Close()
	if err := conn.SetReadDeadline(time.Now().Add(b.readTimeout)); err != nil {
		return received{err: errors.Wrap(err, "failed to set read deadline")}
	}
	data, err := io.ReadAll(io.LimitReader(conn, b.maxMessageSize+1))
	if err != nil {
		return received{err: errors.Wrapf(err, "failed to read from %s", conn.RemoteAddr())}
	}
	if int64(len(data)) > b.maxMessageSize {
		return received{err: errors.Wrapf(protocol.ErrMalformed, "message from %s exceeds %d bytes", conn.RemoteAddr(), b.maxMessageSize)}
	}
	raw := strings.NewReplacer("\r", "", "\n", "").Replace(string(data))
	log.Debug().Msgf("Bridge received %s", raw)
	msg, err := protocol.Decode(raw)
	return received{msg: msg, err: err}
}

func (b *Bridge) Receive(ctx context.Context) (protocol.Message, error) {
	select {
	case <-ctx.Done():
		return protocol.Message{}, ctx.Err()
	case r, ok := <-b.inbox:
		if !ok {
			return protocol.Message{}, communication.ErrClosed
		}
		return r.msg, r.err
	}
}

func (b *Bridge) Send(msg protocol.Message) error {
	conn, err := net.DialTimeout("tcp", b.outbound, dialTimeout)
	if err != nil {
		return errors.Wrapf(err, "failed to reach %s", b.outbound)
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, msg.Encode()); err != nil {
		return errors.Wrapf(err, "failed to send %s", msg.Header)
	}
	log.Debug().Msgf("Bridge sent %s", msg)
	return nil
}

// Close stops listening. Messages already queued are still delivered by Receive, messages still being
// read may be dropped.
func (b *Bridge) Close() error {
	var err error
	b.once.Do(func() {
		close(b.done)
		err = b.listener.Close()
	})
	return err
}

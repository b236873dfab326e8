package protocol

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Header string

const (
	BoardUpdate  Header = "boardupdate"
	OpponentMove Header = "omove"
	ValidMoves   Header = "validmoves"
	AIMove       Header = "aimove"
	NoMove       Header = "nomove"
	Error        Header = "error"
)

const (
	bodyStart = "://"
	footer    = "//:"
)

var ErrMalformed = errors.New("malformed message")

// Message is one envelope exchanged with the game: header@id[/response-id]://body//:
type Message struct {
	Header     Header
	ID         uuid.UUID
	ResponseTo uuid.UUID // uuid.Nil unless the message answers another one
	Body       string
}

func NewMessage(header Header, body string) Message {
	return Message{Header: header, ID: uuid.New(), Body: body}
}

// Reply builds a new message answering m.
func (m Message) Reply(header Header, body string) Message {
	reply := NewMessage(header, body)
	reply.ResponseTo = m.ID
	return reply
}

func (m Message) Encode() string {
	var sb strings.Builder
	sb.WriteString(string(m.Header))
	if m.ID != uuid.Nil {
		sb.WriteString("@")
		sb.WriteString(m.ID.String())
		if m.ResponseTo != uuid.Nil {
			sb.WriteString("/")
			sb.WriteString(m.ResponseTo.String())
		}
	}
	sb.WriteString(bodyStart)
	sb.WriteString(m.Body)
	sb.WriteString(footer)
	return sb.String()
}

func (m Message) String() string {
	return m.Encode()
}

// Decode parses an envelope. The id part is optional, a message without one gets uuid.Nil.
func Decode(raw string) (Message, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, footer) {
		return Message{}, errors.Wrapf(ErrMalformed, "missing footer in %q", raw)
	}
	prefix, rest, ok := strings.Cut(raw, bodyStart)
	if !ok || len(rest) < len(footer) {
		return Message{}, errors.Wrapf(ErrMalformed, "missing body in %q", raw)
	}

	var m Message
	m.Body = rest[:len(rest)-len(footer)]

	header, ids, hasIDs := strings.Cut(prefix, "@")
	m.Header = Header(strings.ToLower(strings.TrimSpace(header)))
	if m.Header == "" {
		return Message{}, errors.Wrapf(ErrMalformed, "missing header in %q", raw)
	}
	if !hasIDs {
		return m, nil
	}

	id, responseTo, isReply := strings.Cut(ids, "/")
	var err error
	m.ID, err = uuid.Parse(id)
	if err != nil {
		return Message{}, errors.Wrapf(ErrMalformed, "bad message id %q", id)
	}
	if isReply {
		m.ResponseTo, err = uuid.Parse(responseTo)
		if err != nil {
			return Message{}, errors.Wrapf(ErrMalformed, "bad response id %q", responseTo)
		}
	}
	return m, nil
}

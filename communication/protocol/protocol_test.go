package protocol

import (
	"checkers/game"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	t.Run("encodes and decodes a reply", func(t *testing.T) {
		request := NewMessage(BoardUpdate, "Tile:[{player_name:HUMAN},{x_pos:1},{y_pos:5}] ")
		reply := request.Reply(AIMove, "2.2:3.3")

		raw := reply.Encode()

		require.Equal(t, "aimove@"+reply.ID.String()+"/"+request.ID.String()+"://2.2:3.3//:", raw)
		got, err := Decode(raw)
		require.NoError(t, err)
		require.Equal(t, reply, got)
	})

	t.Run("accepts a message without id", func(t *testing.T) {
		got, err := Decode("OMOVE://5.5:4.4//:\r\n")

		require.NoError(t, err)
		require.Equal(t, OpponentMove, got.Header, "Header should be lower-cased")
		require.Equal(t, uuid.Nil, got.ID)
		require.Equal(t, "5.5:4.4", got.Body)
	})

	t.Run("empty body", func(t *testing.T) {
		got, err := Decode("nomove@" + uuid.NewString() + ":////:")
		require.NoError(t, err)
		require.Equal(t, "", got.Body)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "aimove://2.2:3.3", "aimove 2.2:3.3//:", "://x//:", "aimove@nope://x//:", "aimove@" + uuid.NewString() + "/nope://x//:"} {
			_, err := Decode(raw)
			require.True(t, errors.Is(err, ErrMalformed), "%q should be malformed", raw)
		}
	})
}

func TestBoardCodec(t *testing.T) {
	t.Run("reads the tile list", func(t *testing.T) {
		body := "Tile:[{player_name:HUMAN},{x_pos:3},{y_pos:3}] Tile:[{player_name:COMPUTER},{x_pos:2},{y_pos:2}] "

		b, err := DecodeBoard(body)

		require.NoError(t, err)
		p, ok := b.PieceAt(game.Square{X: 3, Y: 3})
		require.True(t, ok)
		require.Equal(t, game.Human, p.Owner)
		require.Equal(t, game.Man, p.Rank)
		require.Equal(t, 1, b.Count(game.Computer))
	})

	t.Run("board update takes the new board", func(t *testing.T) {
		body := "[Tile:[{player_name:COMPUTER},{x_pos:0},{y_pos:0}] ]-[Tile:[{player_name:COMPUTER},{x_pos:1},{y_pos:1},{piece_type:KING}] ]"

		b, err := DecodeBoard(body)

		require.NoError(t, err)
		require.Equal(t, []game.Piece{{Owner: game.Computer, Rank: game.King, Position: game.Square{X: 1, Y: 1}}}, b.PiecesOf(game.Computer))
	})

	t.Run("null board is empty", func(t *testing.T) {
		b, err := DecodeBoard("[NULL]-[NULL]")
		require.NoError(t, err)
		require.Equal(t, game.Board{}, b)
	})

	t.Run("round trip", func(t *testing.T) {
		start := game.StartingBoard()
		b, err := start.Apply(game.Move{game.NewStep(game.Square{X: 2, Y: 2}, game.Square{X: 3, Y: 3})})
		require.NoError(t, err)

		got, err := DecodeBoard(EncodeBoard(b))

		require.NoError(t, err)
		require.Equal(t, b, got)
	})

	t.Run("invalid boards", func(t *testing.T) {
		_, err := DecodeBoard("Tile:[{player_name:HUMAN},{x_pos:1},{y_pos:2}] ")
		require.True(t, errors.Is(err, game.ErrIllegalState), "Unplayable square")

		_, err = DecodeBoard("Tile:[{player_name:ALIEN},{x_pos:1},{y_pos:1}] ")
		require.True(t, errors.Is(err, ErrMalformed))

		_, err = DecodeBoard("Tile:[{player_name:HUMAN}] ")
		require.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("one unreadable tile among readable ones", func(t *testing.T) {
		body := "Tile:[{player_name:HUMAN},{x_pos:3}] Tile:[{player_name:COMPUTER},{x_pos:2},{y_pos:2}]"

		_, err := DecodeBoard(body)

		require.True(t, errors.Is(err, ErrMalformed), "A truncated tile should not be dropped")
	})
}

func TestMovesCodec(t *testing.T) {
	moves := []game.Move{
		{game.NewStep(game.Square{X: 0, Y: 0}, game.Square{X: 2, Y: 2}), game.NewStep(game.Square{X: 2, Y: 2}, game.Square{X: 4, Y: 4})},
		{game.NewStep(game.Square{X: 6, Y: 2}, game.Square{X: 7, Y: 3})},
	}

	body := EncodeMoves(moves)
	require.Equal(t, "0.0:2.2,2.2:4.4 6.2:7.3", body)

	got, err := DecodeMoves(body)
	require.NoError(t, err)
	require.Equal(t, moves, got)

	_, err = DecodeMoves("0.0-2.2")
	require.True(t, errors.Is(err, game.ErrIllegalMove))
}

func TestQuery(t *testing.T) {
	b := game.StartingBoard()

	tiles, player, err := SplitQuery(JoinQuery(b, game.Human), game.Computer)
	require.NoError(t, err)
	require.Equal(t, game.Human, player)
	require.Equal(t, EncodeBoard(b), tiles)

	_, player, err = SplitQuery(EncodeBoard(b), game.Computer)
	require.NoError(t, err)
	require.Equal(t, game.Computer, player, "Missing player should use the fallback")

	_, _, err = SplitQuery("x;colour:red", game.Computer)
	require.True(t, errors.Is(err, ErrMalformed))
}

func TestStepsOf(t *testing.T) {
	m := game.Move{game.NewStep(game.Square{X: 0, Y: 0}, game.Square{X: 2, Y: 2})}

	got := StepsOf(m)

	require.Equal(t, [2]int{0, 0}, got[0].From)
	require.Equal(t, &[2]int{1, 1}, got[0].Captured)
	require.Nil(t, StepsOf(game.Move{game.NewStep(game.Square{X: 0, Y: 0}, game.Square{X: 1, Y: 1})})[0].Captured)
}

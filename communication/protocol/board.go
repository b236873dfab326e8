package protocol

import (
	"checkers/game"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var tilePattern = regexp.MustCompile(`Tile:\[\{player_name:(\w+)\},\{x_pos:(-?\d+)\},\{y_pos:(-?\d+)\}(?:,\{piece_type:(\w+)\})?\]`)

// EncodeBoard writes one Tile entry per occupied square in board index order.
// piece_type is only written for kings.
func EncodeBoard(b game.Board) string {
	var sb strings.Builder
	for _, player := range []game.Player{game.Computer, game.Human} {
		for _, p := range b.PiecesOf(player) {
			fmt.Fprintf(&sb, "Tile:[{player_name:%s},{x_pos:%d},{y_pos:%d}", p.Owner, p.Position.X, p.Position.Y)
			if p.Rank == game.King {
				fmt.Fprintf(&sb, ",{piece_type:%s}", p.Rank)
			}
			sb.WriteString("] ")
		}
	}
	return sb.String()
}

// DecodeBoard reads a tile list. A "[old]-[new]" board update body yields the new board.
// Every Tile entry must be readable.
func DecodeBoard(body string) (game.Board, error) {
	if i := strings.LastIndex(body, "]-["); i >= 0 {
		body = body[i+len("]-["):]
	}

	matches := tilePattern.FindAllStringSubmatch(body, -1)
	if entries := strings.Count(body, "Tile:"); len(matches) != entries {
		return game.Board{}, errors.Wrapf(ErrMalformed, "read %d of %d tiles in %q", len(matches), entries, body)
	}

	var pieces []game.Piece
	for _, match := range matches {
		owner, err := game.ParsePlayer(match[1])
		if err != nil {
			return game.Board{}, errors.Wrap(ErrMalformed, err.Error())
		}
		x, _ := strconv.Atoi(match[2])
		y, _ := strconv.Atoi(match[3])
		rank, err := game.ParseRank(match[4])
		if err != nil {
			return game.Board{}, errors.Wrap(ErrMalformed, err.Error())
		}
		pieces = append(pieces, game.Piece{Owner: owner, Rank: rank, Position: game.Square{X: x, Y: y}})
	}
	return game.NewBoard(pieces...)
}

// EncodeMoves joins move notations with spaces.
func EncodeMoves(moves []game.Move) string {
	notations := make([]string, len(moves))
	for i, m := range moves {
		notations[i] = m.String()
	}
	return strings.Join(notations, " ")
}

func DecodeMoves(body string) ([]game.Move, error) {
	var moves []game.Move
	for _, notation := range strings.Fields(body) {
		m, err := game.ParseMove(notation)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// SplitQuery separates a "<tiles>;player:<NAME>" valid moves request. The player is
// the fallback when absent.
func SplitQuery(body string, fallback game.Player) (string, game.Player, error) {
	tiles, option, ok := strings.Cut(body, ";")
	if !ok {
		return body, fallback, nil
	}
	key, value, _ := strings.Cut(option, ":")
	if strings.TrimSpace(key) != "player" {
		return "", fallback, errors.Wrapf(ErrMalformed, "unknown option %q", option)
	}
	player, err := game.ParsePlayer(value)
	if err != nil {
		return "", fallback, errors.Wrap(ErrMalformed, err.Error())
	}
	return tiles, player, nil
}

// JoinQuery is the inverse of SplitQuery.
func JoinQuery(b game.Board, player game.Player) string {
	return EncodeBoard(b) + ";player:" + player.String()
}

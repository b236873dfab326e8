// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used to split the root of a search.
const GO_ROUTINES = 1

// DEPTH defines the default search depth in plies.
const DEPTH = 8

// MAX_TURNS ends a self-play game as a draw.
const MAX_TURNS = 300

// INBOUND_PORT is where the bridge listens for messages from the game.
const INBOUND_PORT = 5000

// OUTBOUND_PORT is where the bridge delivers messages to the game.
const OUTBOUND_PORT = 5001

// HTTP_PORT serves the HTTP and websocket API.
const HTTP_PORT = 3000

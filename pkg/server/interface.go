/*
Package server implements msgpack IPC for prefix searches.

The server reads a stream of msgpack maps from stdin and answers each with one
msgpack map on stdout. Requests are processed synchronously, in order, with
timing information included in completion responses.

# IPC

Every request carries an id which is echoed back. A request without an id is
given a generated UUID. Completion requests look like:

	{"id": "req_001", "p": "cas", "l": 24}

and are answered with the matching words in index order:

	{"id": "req_001", "s": [{"w": "casa", "a": 1, "r": 1}, {"w": "caseta", "a": 2, "r": 2}], "c": 2, "t": 12}

where "a" is the article number of the word and "t" the search time in
microseconds. The "cmd" field selects other operations:

	{"id": "h1", "cmd": "health"}
	{"id": "s1", "cmd": "stats"}

Failures are reported as {"id", "e": message, "c": code}.
*/
package server

// Commands accepted in the "cmd" field. An empty cmd means CmdComplete.
const (
	CmdComplete = "complete"
	CmdHealth   = "health"
	CmdStats    = "stats"
)

// Request is the envelope of every incoming message
type Request struct {
	ID     string `msgpack:"id"`
	Cmd    string `msgpack:"cmd,omitempty"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word    string `msgpack:"w"`
	Article uint16 `msgpack:"a"`
	Rank    uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatusResponse answers health and stats requests
type StatusResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

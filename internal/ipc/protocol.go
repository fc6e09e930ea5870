package ipc

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	OK      bool   `json:"ok"`
	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`

	// Session status payload for the "status" command.
	Session  string `json:"session,omitempty"`
	Segments int    `json:"segments,omitempty"`
	Tokens   int    `json:"tokens,omitempty"`
}

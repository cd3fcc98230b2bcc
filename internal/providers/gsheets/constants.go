package gsheets

import "time"

const (
	defaultBaseURL     = "https://docs.google.com/spreadsheets/d"
	defaultHTTPTimeout = 10 * time.Second
	// Large auction workbooks export well under this; anything bigger is not a sheet.
	maxBodyBytes = 16 << 20
	// Bytes of a non-2xx body kept for the error message.
	errorBodyBytes = 512
)

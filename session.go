package zcore

import "github.com/google/uuid"

// newSessionTag mints a correlation ID for a single ReadPipeline or
// stream-control call; it appears in every log line emitted while
// servicing that call and has no effect on the bytes produced.
func newSessionTag() string {
	return uuid.New().String()
}

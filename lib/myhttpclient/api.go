package myhttpclient

import (
	"context"
	"time"
)

//go:generate mockgen -source=api.go -package myhttpclient -destination sender_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

// New returns a json client. A zero timeout leaves it to the transport defaults.
func New(timeout time.Duration) HTTPSender {
	return newJSONHTTPClient(timeout)
}

package notifier

import (
	"context"
	"fmt"
)

// Receipt is the outcome of one publish attempt. Publishers report failure
// here instead of returning an error; callers decide whether to care.
type Receipt struct {
	Channel string
	PostID  string
	Err     error
}

// OK reports whether the post was accepted.
func (r Receipt) OK() bool { return r.Err == nil }

// Publisher posts a composed message to an external channel.
type Publisher interface {
	Publish(ctx context.Context, text string) Receipt
	Name() string
}

func failed(channel string, format string, args ...any) Receipt {
	return Receipt{Channel: channel, Err: fmt.Errorf(format, args...)}
}

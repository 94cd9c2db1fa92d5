package reply

import (
	"context"
	"errors"

	"github.com/puresoul/puresoul/backend/internal/model/category"
	"github.com/puresoul/puresoul/backend/internal/model/chat"
)

// ErrCreditExhausted signals that the reply backend refused to answer
// because the caller's credit is spent server-side. The backend is
// authoritative: callers must honor this even when their local balance
// says otherwise.
var ErrCreditExhausted = errors.New("reply backend reported credit exhaustion")

// Fallback is substituted for the therapist reply when the backend is
// unreachable, so a transport hiccup never kills the session.
const Fallback = "Main thoda connection error face kar raha hoon, but main sun raha hoon. Please continue."

// Replier produces the therapist's answer to one user message given a
// bounded trailing window of conversation history.
type Replier interface {
	Reply(ctx context.Context, userMessage string, history []chat.Message, cat category.Category) (string, error)
}

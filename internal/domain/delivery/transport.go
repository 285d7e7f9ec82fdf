package delivery

import "context"

// Attachment is a rendered document artifact ready to be attached to an
// email. Artifacts are transient: produced, attached, discarded.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outbound email to a single recipient.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Transport sends a single message. Implementations may fail per send; the
// coordinator decides how batch failures propagate.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

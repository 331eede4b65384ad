package notifier

import (
	"net/http"
	"strings"
)

type Noop struct{}

func (n Noop) Notify(_, _ string) error {
	return nil
}

func NewNoop() Noop {
	return Noop{}
}

// Ntfy pushes a message to an ntfy.sh topic. The station uses it for the
// fatal fault path only; nobody is watching the LED on a balcony.
type Ntfy struct {
	url string
}

func NewNtfy(url string) *Ntfy {
	return &Ntfy{url: url}
}

func (n Ntfy) Notify(title, message string) error {
	req, _ := http.NewRequest("POST", n.url, strings.NewReader(message))
	req.Header.Set("Title", title)
	req.Header.Set("Priority", "high")
	req.Header.Set("Tags", "warning,station")
	_, err := http.DefaultClient.Do(req)

	return err
}

// Package notify delivers user-visible alerts when a timer completes.
package notify

import (
	"errors"
	"log"
	"strings"
)

type Notifier interface {
	Notify(title, body string) error
}

// Func adapts a plain function to Notifier.
type Func func(title, body string) error

func (f Func) Notify(title, body string) error {
	return f(title, body)
}

type Log struct {
	Logger *log.Logger
}

func (n Log) Notify(title, body string) error {
	if n.Logger != nil {
		n.Logger.Printf("[notify] %s: %s", title, body)
		return nil
	}
	log.Printf("[notify] %s: %s", title, body)
	return nil
}

type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(title, body string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromName resolves a configured notifier name. Unknown names fall back to
// logging.
func FromName(name string) Notifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "off":
		return Nop{}
	default:
		return Log{}
	}
}

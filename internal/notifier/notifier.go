package notifier

import "log"

// Notifier delivers internal ops notifications about booking lifecycle
// events. Interface so the channel can change (email, Slack) without
// touching the consumer.
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[ops-notify] %s :: %s", subject, message)
	return nil
}

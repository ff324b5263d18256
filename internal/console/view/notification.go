package view

import (
	"fmt"
	"io"
	"time"

	"github.com/chiquitav2/user-console/pkg/errors"
)

// Level is the severity of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// DefaultDuration is how long a notification stays visible
const DefaultDuration = 3 * time.Second

// Notification is a dismissible, auto-expiring message shown to the operator.
type Notification struct {
	ID        string        `json:"id"`
	Level     Level         `json:"level"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Empty reports whether there is nothing to show
func (n Notification) Empty() bool {
	return n.Message == ""
}

func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }
func Info(msg string) Notification    { return Notification{Level: LevelInfo, Message: msg} }
func Warning(msg string) Notification { return Notification{Level: LevelWarning, Message: msg} }
func Danger(msg string) Notification  { return Notification{Level: LevelDanger, Message: msg} }

// Notify maps the outcome of an operation onto a notification.
// On success the success text is shown (nothing when it is empty). On failure
// the error text is shown after the failure prefix, if any. Invalid input is
// a warning; every other failure is shown as danger.
func Notify(success, failure string, err error) Notification {
	if err == nil {
		if success == "" {
			return Notification{}
		}
		return Success(success)
	}

	msg := errors.UserMessage(err)
	if failure != "" {
		msg = failure + ": " + msg
	}

	if errors.GetErrorDomain(err) == errors.DomainInput {
		return Warning(msg)
	}
	return Danger(msg)
}

// RenderNotification writes a single-line notification
func RenderNotification(w io.Writer, n Notification) error {
	if n.Empty() {
		return nil
	}
	_, err := fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Message)
	return err
}

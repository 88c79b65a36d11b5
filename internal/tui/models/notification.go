// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nixdex/nixdex/internal/tui/styles"
)

// Notification severities.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// DefaultNotificationTimeout is how long a notification stays visible.
const DefaultNotificationTimeout = 4 * time.Second

// Notification is a transient, severity-tagged status message. Every error in
// the UI is recovered into one of these; none are fatal.
type Notification struct {
	Text     string
	Severity string
}

// NotifyMsg shows a notification.
type NotifyMsg struct {
	Notification Notification
}

// notificationExpiredMsg clears a notification after its timeout.
type notificationExpiredMsg struct {
	seq int
}

// Notify builds a command that shows a notification.
func Notify(severity, text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Notification: Notification{Text: text, Severity: severity}}
	}
}

// notifier tracks the currently displayed notification for a screen model.
// The sequence number ties each expiry timer to the notification that armed
// it, so a stale timer cannot clear a newer message.
type notifier struct {
	current *Notification
	seq     int
}

// show displays the notification and arms its expiry timer.
func (n *notifier) show(notification Notification) tea.Cmd {
	n.current = &notification
	n.seq++

	seq := n.seq

	return tea.Tick(DefaultNotificationTimeout, func(time.Time) tea.Msg {
		return notificationExpiredMsg{seq: seq}
	})
}

// expire clears the notification if msg belongs to it.
func (n *notifier) expire(msg notificationExpiredMsg) {
	if msg.seq == n.seq {
		n.current = nil
	}
}

// render returns the styled notification line, or empty when none is shown.
func (n *notifier) render(styleConfig *styles.Styles) string {
	if n.current == nil {
		return ""
	}

	var textStyle lipgloss.Style

	switch n.current.Severity {
	case SeverityError:
		textStyle = styleConfig.ErrorText
	case SeverityWarning:
		textStyle = styleConfig.WarningText
	case SeveritySuccess:
		textStyle = styleConfig.SuccessText
	default:
		textStyle = styleConfig.PrimaryText
	}

	return styleConfig.SeverityIcon(n.current.Severity) + " " + textStyle.Render(n.current.Text)
}

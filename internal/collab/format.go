package collab

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders a notification with locale-aware number grouping.
func Format(format string, args ...any) string {
	return printer.Sprintf(format, args...)
}

// Points renders a score delta, e.g. "+1,000 points".
func Points(delta int) string {
	if delta >= 0 {
		return printer.Sprintf("+%d points", delta)
	}
	return printer.Sprintf("%d points", delta)
}

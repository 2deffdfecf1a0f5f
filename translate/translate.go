// Package translate renders user-facing messages through a locale aware
// printer.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

func initPrinter() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("rvfuzz: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// Printer returns the process wide message printer.
func Printer() *message.Printer {
	printerOnce.Do(initPrinter)
	return printer
}

// SetLanguage replaces the process wide printer with one for tag. Only
// messages rendered afterwards use it. Sentinel errors are rendered when
// their package initializes, so they keep the locale's language.
func SetLanguage(tag language.Tag) {
	printerOnce.Do(func() {})
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}

// Package i18n localizes stringify's own command-line output. Message
// catalogs are embedded in the binary and selected from the
// environment at startup.
package i18n

import (
	"embed"
	"os"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const domain = "stringify"

var (
	mu     sync.Mutex
	locale *gotext.Locale
)

// Setup loads the message catalog for lang. An empty lang falls back
// to the LANGUAGE, LC_ALL and LANG environment variables, in that
// order. Unknown languages leave messages untranslated.
func Setup(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	mu.Lock()
	defer mu.Unlock()
	locale = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates a message, formatting it with vars when given. Before
// Setup, or for languages without a catalog, the message passes
// through unchanged.
func T(msg string, vars ...interface{}) string {
	mu.Lock()
	l := locale
	mu.Unlock()
	if l == nil {
		if len(vars) == 0 {
			return msg
		}
		return gotext.Get(msg, vars...)
	}
	return l.Get(msg, vars...)
}

func detectLanguage() string {
	for _, key := range []string{"LANGUAGE", "LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, "_.@:"); i > 0 {
			v = v[:i]
		}
		return v
	}
	return "en"
}

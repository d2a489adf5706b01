package collate

import (
	"bytes"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured or the configured one is unusable.
const DefaultLocale = "en_US"

// UnicodeCollator compares two UTF-8 strings according to a locale.
// Implementations must be safe for concurrent use.
type UnicodeCollator interface {
	// Compare returns a negative number, zero or a positive number if a sorts
	// before, equal to or after b.
	Compare(a, b []byte) int
}

// textCollator is the UnicodeCollator backed by golang.org/x/text/collate.
//
// collate.Collator keeps per-call scratch state, so every goroutine borrows its own
// instance from the pool. The struct itself is immutable after construction.
type textCollator struct {
	locale string
	tag    language.Tag
	pool   sync.Pool

	// keys caches sort keys of recently collated strings. nil if disabled.
	keys *lru.Cache[string, []byte]
}

var _ UnicodeCollator = (*textCollator)(nil)

var (
	defaultUnicodeOnce sync.Once
	defaultUnicode     UnicodeCollator
)

// DefaultUnicodeCollator returns the process wide collator for DefaultLocale.
func DefaultUnicodeCollator() UnicodeCollator {
	defaultUnicodeOnce.Do(func() {
		defaultUnicode = NewUnicodeCollator(DefaultLocale, 0)
	})
	return defaultUnicode
}

// NewUnicodeCollator creates a Unicode collation service for locale.
// An unparsable locale falls back to DefaultLocale.
// keyCacheSize > 0 enables an LRU cache of that many sort keys.
func NewUnicodeCollator(locale string, keyCacheSize int) UnicodeCollator {
	if locale == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		log.WithFields(log.Fields{"locale": locale, "error": err.Error()}).Error("collate::unicode: NewUnicodeCollator; failed to create collator for locale")
		log.WithFields(log.Fields{"locale": DefaultLocale}).Warn("collate::unicode: NewUnicodeCollator; falling back to the default locale")
		locale = DefaultLocale
		tag = language.MustParse(DefaultLocale)
	}

	tc := &textCollator{
		locale: locale,
		tag:    tag,
	}
	tc.pool.New = func() interface{} {
		return collate.New(tc.tag)
	}

	if keyCacheSize > 0 {
		cache, err := lru.New[string, []byte](keyCacheSize)
		if err != nil {
			log.WithFields(log.Fields{"size": keyCacheSize, "error": err.Error()}).Error("collate::unicode: NewUnicodeCollator; key cache disabled")
		} else {
			tc.keys = cache
		}
	}

	log.WithFields(log.Fields{"locale": locale, "keyCacheSize": keyCacheSize}).Debug("collate::unicode: NewUnicodeCollator; done")
	return tc
}

// Locale returns the locale the collator was created for.
func (tc *textCollator) Locale() string {
	return tc.locale
}

func (tc *textCollator) Compare(a, b []byte) int {
	if tc.keys != nil {
		return bytes.Compare(tc.key(a), tc.key(b))
	}

	coll := tc.pool.Get().(*collate.Collator)
	defer tc.pool.Put(coll)
	return coll.Compare(a, b)
}

// key returns the sort key of s, computing and caching it if needed.
func (tc *textCollator) key(s []byte) []byte {
	if k, ok := tc.keys.Get(string(s)); ok {
		return k
	}

	coll := tc.pool.Get().(*collate.Collator)
	var buf collate.Buffer
	k := append([]byte(nil), coll.Key(&buf, s)...)
	tc.pool.Put(coll)

	tc.keys.Add(string(s), k)
	return k
}

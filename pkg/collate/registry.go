package collate

import (
	"fmt"

	"github.com/dr0pdb/icecanecollate/pkg/common"
	log "github.com/sirupsen/logrus"
)

// Names under which the comparators are registered with the storage engine.
const (
	NameJSON      = "JSON"
	NameJSONRaw   = "JSON_RAW"
	NameJSONASCII = "JSON_ASCII"
	NameRevID     = "REVID"
)

// Comparator is a named total order over encoded keys.
// It matches storage.Comparator.
type Comparator interface {
	Compare(a, b []byte) int
	Name() string
}

var (
	_ Comparator = (*JSONCollator)(nil)
	_ Comparator = RevIDCollator{}
)

// Names returns the registered comparator names in registration order.
func Names() []string {
	return []string{NameJSON, NameJSONRaw, NameJSONASCII, NameRevID}
}

// NewComparator returns the comparator registered under name.
// unicode is the collation service for non-ASCII strings; nil selects the default.
func NewComparator(name string, unicode UnicodeCollator) (Comparator, error) {
	switch name {
	case NameJSON:
		return NewJSONCollator(Unicode, unicode), nil
	case NameJSONRaw:
		return NewJSONCollator(Raw, unicode), nil
	case NameJSONASCII:
		return NewJSONCollator(ASCII, unicode), nil
	case NameRevID:
		return RevIDCollator{}, nil
	}

	log.WithFields(log.Fields{"name": name}).Error("collate::registry: NewComparator; unknown comparator")
	return nil, common.NewUnknownComparatorError(fmt.Sprintf("unknown comparator %q", name))
}

// NewComparatorFromConfig builds the Unicode collation service described by conf
// and returns the comparator it selects.
func NewComparatorFromConfig(conf *common.CollatorConfig) (Comparator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	var unicode UnicodeCollator
	if conf.Locale == DefaultLocale && conf.KeyCacheSize == 0 {
		unicode = DefaultUnicodeCollator()
	} else {
		unicode = NewUnicodeCollator(conf.Locale, conf.KeyCacheSize)
	}
	return NewComparator(conf.Collation, unicode)
}

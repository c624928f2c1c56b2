package models

import (
	"strings"

	"github.com/rohanthewiz/serr"
)

// ContentType selects which remote suggestion endpoint backs a field.
// The zero value means no type has been chosen yet.
type ContentType string

const (
	ContentTypeCategory    ContentType = "CATEGORY"
	ContentTypeSubcategory ContentType = "SUBCATEGORY"
	ContentTypeMerchant    ContentType = "MERCHANT"
	ContentTypeBrand       ContentType = "BRAND"
)

// ContentTypes lists the selectable types in display order.
var ContentTypes = []ContentType{
	ContentTypeCategory,
	ContentTypeSubcategory,
	ContentTypeMerchant,
	ContentTypeBrand,
}

// IsValid reports whether ct is one of the known content types.
func (ct ContentType) IsValid() bool {
	for _, known := range ContentTypes {
		if ct == known {
			return true
		}
	}
	return false
}

// IsSet reports whether a content type has been chosen.
func (ct ContentType) IsSet() bool {
	return ct != ""
}

func (ct ContentType) String() string {
	return string(ct)
}

// ParseContentType accepts the canonical upper-case names (case-insensitive).
// An empty string parses to the unset type.
func ParseContentType(raw string) (ContentType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	ct := ContentType(strings.ToUpper(raw))
	if !ct.IsValid() {
		return "", serr.New("unknown content type: " + raw)
	}
	return ct, nil
}

// CountryCode scopes a remote lookup to one market.
type CountryCode string

const (
	CountrySE CountryCode = "SE"
	CountryDK CountryCode = "DK"
	CountryUK CountryCode = "UK"
)

// DefaultCountryCode is used when a session starts.
const DefaultCountryCode = CountrySE

// CountryCodes lists the selectable markets in display order.
var CountryCodes = []CountryCode{CountrySE, CountryDK, CountryUK}

// IsValid reports whether cc is one of the known markets.
func (cc CountryCode) IsValid() bool {
	for _, known := range CountryCodes {
		if cc == known {
			return true
		}
	}
	return false
}

func (cc CountryCode) String() string {
	return string(cc)
}

// ParseCountryCode accepts SE, DK or UK (case-insensitive).
func ParseCountryCode(raw string) (CountryCode, error) {
	cc := CountryCode(strings.ToUpper(strings.TrimSpace(raw)))
	if !cc.IsValid() {
		return "", serr.New("unknown country code: " + raw)
	}
	return cc, nil
}

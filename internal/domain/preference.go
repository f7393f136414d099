package domain

// Locale is the interface language chosen by a client profile.
type Locale string

const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"

	DefaultLocale = LocaleID
)

func (l Locale) Valid() bool {
	return l == LocaleID || l == LocaleEN
}

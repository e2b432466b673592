package domain

// Source identifies which resolution strategy produced a metadata result.
type Source string

const (
	SourceInlineExtension Source = "INLINE_EXTENSION"
	SourceDerivedAccount  Source = "DERIVED_ACCOUNT"
	SourceRegistry        Source = "REGISTRY"
	SourceOverride        Source = "OVERRIDE"
	SourceUnresolved      Source = "UNRESOLVED"
)

// String returns the string representation of Source.
func (s Source) String() string {
	return string(s)
}

// IsValid checks if the source is a valid value.
func (s Source) IsValid() bool {
	switch s {
	case SourceInlineExtension, SourceDerivedAccount, SourceRegistry, SourceOverride, SourceUnresolved:
		return true
	}
	return false
}

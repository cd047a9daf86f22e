package extractor

// DocumentExtractor defines the interface for turning a source document into
// a plain-text transcript
type DocumentExtractor interface {
	// Extract returns the plain text of the document at path
	Extract(path string) (string, error)

	// SupportedExtensions returns the file extensions this extractor handles
	SupportedExtensions() []string
}

package nerview

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms annotated HTML into Markdown for plain-text preview.
	Convert(html string) (string, error)
}

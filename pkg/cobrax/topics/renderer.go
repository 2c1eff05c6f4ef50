package topics

// Renderer formats topic content for display. format is the topic file
// extension, ".md" for markdown.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

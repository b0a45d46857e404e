package formatter

// GeneratorIssueFormatter adds a note on single-use iterators to the
// general layout.
type GeneratorIssueFormatter struct{}

const generatorNote = "generators and iterators are exhausted after one pass, so a second consumer silently sees nothing"

func (f *GeneratorIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .MaxLineNumWidth .Filename .Line .Column -}}
{{snippet .SnippetLines .Line .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .Line .Column .SnippetLines .CommonIndent -}}
{{note "` + generatorNote + `"}}
`
}

package formatter

type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .MaxLineNumWidth .Filename .Line .Column -}}
{{snippet .SnippetLines .Line .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .Line .Column .SnippetLines .CommonIndent}}
`
}

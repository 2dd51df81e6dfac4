package html2pdf

import (
	"errors"
	"strings"
	"testing"
)

func TestMarkdownConverter_ToHTML(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		contains []string
	}{
		{
			name:     "heading",
			markdown: "# Title",
			contains: []string{"<h1", "Title", "</h1>"},
		},
		{
			name:     "gfm table",
			markdown: "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "fenced code block",
			markdown: "```go\nfmt.Println(\"hi\")\n```",
			contains: []string{"<pre"},
		},
		{
			name:     "wrapped in html5 document",
			markdown: "plain text",
			contains: []string{"<!DOCTYPE html>", `<meta charset="utf-8">`, "</html>"},
		},
	}

	conv := NewMarkdownConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToHTML(tt.markdown)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\ngot: %s", want, got)
				}
			}
		})
	}
}

func TestMarkdownConverter_ToHTML_Empty(t *testing.T) {
	conv := NewMarkdownConverter()

	_, err := conv.ToHTML("")
	if !errors.Is(err, ErrEmptyMarkdown) {
		t.Fatalf("expected ErrEmptyMarkdown, got %v", err)
	}
}

func TestMarkdownConverter_ToHTML_RawHTMLEscaped(t *testing.T) {
	conv := NewMarkdownConverter()

	got, err := conv.ToHTML("<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<script>alert(1)</script>") {
		t.Error("raw HTML must not pass through unescaped")
	}
}

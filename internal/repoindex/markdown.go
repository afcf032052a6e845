package repoindex

import (
	"fmt"
	"strings"
)

const sectionCap = 15

func renderMarkdown(repoName string, stats Stats, index Index) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Project Index: %s\n\n", repoName)
	fmt.Fprintf(&b, "- Total files: %d\n", stats.TotalFiles)
	fmt.Fprintf(&b, "- Mode: %s\n\n", stats.Mode)

	b.WriteString("## 📁 Structure Snapshot\n")
	for _, item := range index.Structure {
		if item.Type == "dir" {
			fmt.Fprintf(&b, "- 📁 `%s` (%d files)\n", item.Path, item.FileCount)
		} else {
			fmt.Fprintf(&b, "- 📄 `%s` (%d bytes)\n", item.Path, item.Size)
		}
	}

	b.WriteString("\n## 🚀 Entry Points\n")
	for _, entry := range index.EntryPoints {
		fmt.Fprintf(&b, "- `%s` — %s\n", entry.File, entry.Hint)
	}

	writeCappedSection(&b, "## 📚 Documentation", index.Documentation)
	writeCappedSection(&b, "## ⚙️ Configuration", index.Configuration)
	writeCappedSection(&b, "## 🧪 Tests", index.Tests)

	b.WriteString("\n")
	return b.String()
}

func writeCappedSection(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", header)
	shown := items
	if len(shown) > sectionCap {
		shown = shown[:sectionCap]
	}
	for _, item := range shown {
		fmt.Fprintf(b, "- `%s`\n", item)
	}
	if len(items) > sectionCap {
		fmt.Fprintf(b, "- ... (%d more)\n", len(items)-sectionCap)
	}
}

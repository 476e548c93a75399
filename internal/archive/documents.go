package archive

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultDescription = "A sample bank for Devalang."

// Readme synthesizes README.md for banks that do not ship one.
func Readme(author, name, description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		description = defaultDescription
	}
	title := cases.Title(language.Und).String(strings.NewReplacer("-", " ", "_", " ").Replace(name))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%s\n\n", description)
	fmt.Fprintf(&b, "- Bank: `%s.%s`\n", author, name)
	fmt.Fprintf(&b, "- Author: %s\n\n", author)
	b.WriteString("## Usage\n\n")
	b.WriteString("```deva\n")
	fmt.Fprintf(&b, "@use %s.%s as %s\n", author, name, name)
	b.WriteString("```\n")
	return b.String()
}

// License synthesizes an MIT license naming author as copyright holder.
func License(author string) string {
	return fmt.Sprintf(`MIT License

Copyright (c) %s

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`, author)
}

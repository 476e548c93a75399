package manifest

import "strings"

// Render produces the text of a fresh manifest with no triggers.
func Render(s Section) string {
	var b strings.Builder
	b.WriteString(bankHeader + "\n")
	b.WriteString("name = " + quote(s.Name) + "\n")
	b.WriteString("author = " + quote(s.Author) + "\n")
	b.WriteString("description = " + quote(s.Description) + "\n")
	b.WriteString("version = " + quote(s.Version) + "\n")
	b.WriteString("access = " + quote(s.Access) + "\n")
	return b.String()
}

// Package vcard renders the contact card encoded in the site's QR code.
package vcard

import (
	"strings"
)

// Card holds the values placed on a vCard 3.0.
type Card struct {
	FullName string // e.g. "Ayşe Yılmaz"
	Prefix   string // honorific placed before FN, e.g. "Av."
	Phone    string
	Email    string
	Address  string
}

// Generate returns a BEGIN:VCARD ... END:VCARD block with CRLF line endings.
// N is derived from FullName: the last word is the family name, the rest
// the given names.
func Generate(c Card) string {
	family, given := splitName(c.FullName)
	fn := strings.TrimSpace(strings.TrimSpace(c.Prefix) + " " + strings.TrimSpace(c.FullName))

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + escape(family) + ";" + escape(given) + ";;;",
		"FN:" + escape(fn),
		"TEL;TYPE=CELL:" + escape(c.Phone),
		"EMAIL:" + escape(c.Email),
		"ADR;TYPE=WORK:;;" + escape(c.Address),
		"END:VCARD",
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

func splitName(full string) (family, given string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escape(s string) string {
	return escaper.Replace(strings.TrimSpace(s))
}

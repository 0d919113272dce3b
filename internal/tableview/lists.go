package tableview

import "strings"

// Delimiters used by the server when it packs lists into hidden fields.
const (
	DelimRecord  = ";"
	DelimComma   = ","
	DelimSection = "###"
	DelimPair    = "&"
	DelimColumn  = ":"
)

// SplitList splits a packed hidden-field value. Empty input yields no
// elements rather than one empty element.
func SplitList(s, delim string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, delim)
}

// ParseRecords splits rows by rowDelim and columns by colDelim.
func ParseRecords(s, rowDelim, colDelim string) [][]string {
	rows := SplitList(s, rowDelim)
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r == "" {
			continue
		}
		out = append(out, strings.Split(r, colDelim))
	}
	return out
}

// ParsePairs decodes k=v items joined by DelimPair. Later keys win.
func ParsePairs(s string) map[string]string {
	out := map[string]string{}
	for _, item := range SplitList(s, DelimPair) {
		k, v, ok := strings.Cut(item, "=")
		if !ok || k == "" {
			continue
		}
		out[k] = v
	}
	return out
}

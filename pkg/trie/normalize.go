package trie

import "strings"

type charMapping struct {
	char        rune
	replacement string
}

// searchMappings folds the Catalan geminate and accented letters onto the
// plain alphabet used by index keys. Uppercase letters map straight to the
// lowercase base so that Normalize stays idempotent.
var searchMappings = []charMapping{
	{'Ŀ', "l"},
	{'ŀ', "l"},
	{'·', ""},
	{'‧', ""},
	{'.', ""},
	{'À', "a"},
	{'É', "e"},
	{'È', "e"},
	{'Í', "i"},
	{'Ï', "i"},
	{'Ó', "o"},
	{'Ò', "o"},
	{'Ú', "u"},
	{'Ü', "u"},
	{'Ç', "c"},
	{'à', "a"},
	{'é', "e"},
	{'è', "e"},
	{'í', "i"},
	{'ï', "i"},
	{'ó', "o"},
	{'ò', "o"},
	{'ú', "u"},
	{'ü', "u"},
	{'ç', "c"},
}

func normalizeChar(sb *strings.Builder, r rune) {
	for _, m := range searchMappings {
		if m.char == r {
			sb.WriteString(m.replacement)
			return
		}
	}

	if r >= 'A' && r <= 'Z' {
		sb.WriteRune(r - 'A' + 'a')
		return
	}
	sb.WriteRune(r)
}

// Normalize folds s into the form used for matching against the index:
// mapped characters are replaced, ASCII letters lowercased, everything
// else passed through unchanged.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		normalizeChar(&sb, r)
	}
	return sb.String()
}

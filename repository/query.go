package repository

import (
	"fmt"
	"strings"
)

// escapeLikePattern escapes the characters that carry meaning inside a LIKE
// pattern, so a search term is always matched literally.
func escapeLikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// bookFilter builds the WHERE clause and argument list for a book list query.
// A non-blank search term matches as a case-insensitive substring against any
// of title, author, genre and description; a non-blank genre must match
// exactly (case-sensitive). Both conditions are ANDed when present. With
// neither present the clause matches every record.
func bookFilter(search, genre string) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	if search = strings.TrimSpace(search); search != "" {
		args = append(args, "%"+escapeLikePattern(search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE %[1]s OR author ILIKE %[1]s OR genre ILIKE %[1]s OR description ILIKE %[1]s)",
			placeholder,
		))
	}
	if genre = strings.TrimSpace(genre); genre != "" {
		args = append(args, genre)
		conditions = append(conditions, fmt.Sprintf("genre = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "TRUE", args
	}
	return strings.Join(conditions, " AND "), args
}

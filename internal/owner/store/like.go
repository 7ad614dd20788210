package store

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix turns a user-supplied fragment into a LIKE prefix pattern with
// wildcards in the fragment matched literally.
func likePrefix(fragment string) string {
	return likeEscaper.Replace(fragment) + "%"
}

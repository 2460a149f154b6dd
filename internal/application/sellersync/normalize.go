package sellersync

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents remove marcas diacríticas: NFD -> remove Mn -> NFC.
// "João" e "Joao" precisam cair na mesma chave do índice de nomes.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName devolve a forma canônica de um nome de vendedor para o
// índice nome->uid: trim, espaços internos colapsados, sem acentos,
// maiúsculas.
func NormalizeName(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToUpper(s)
}

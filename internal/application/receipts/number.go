package receipts

import (
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics descompone (NFD), elimina las marcas combinantes y recompone,
// de modo que "Ñuñoa" produzca "Nunoa" antes de derivar el prefijo.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// GenerateNumber deriva el número de recibo con formato fijo
// REC-<PREFIJO3>-<yyyyMMdd>-<HHmmss>. El prefijo son las tres primeras letras
// del nombre de la tienda en mayúsculas, sin tildes; si el nombre tiene menos
// de tres letras se rellena con X. Las colisiones solo son posibles dentro del
// mismo segundo para la misma tienda y las rechaza el constraint único al
// persistir.
func GenerateNumber(storeName string, t time.Time) string {
	return "REC-" + storePrefix(storeName) + "-" + t.Format("20060102") + "-" + t.Format("150405")
}

func storePrefix(storeName string) string {
	clean, _, err := transform.String(stripDiacritics, storeName)
	if err != nil {
		clean = storeName
	}
	letters := make([]rune, 0, 3)
	for _, r := range clean {
		if !unicode.IsLetter(r) {
			continue
		}
		letters = append(letters, unicode.ToUpper(r))
		if len(letters) == 3 {
			break
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return string(letters)
}

package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Area sede de almacenamiento de la Dirección de Cuarentena.
type Area string

const (
	AreaPPCBalboa    Area = "PPC Balboa"
	AreaPSA          Area = "PSA"
	AreaChiriqui     Area = "Chiriquí"
	AreaTocumen      Area = "Tocumen"
	AreaColon        Area = "Colón"
	AreaBocasDelToro Area = "Bocas del Toro"
	AreaManzanillo   Area = "Manzanillo"
)

// Areas catálogo en el orden en que se muestra.
var Areas = []Area{
	AreaPPCBalboa, AreaPSA, AreaChiriqui, AreaTocumen, AreaColon, AreaBocasDelToro, AreaManzanillo,
}

// ParseArea acepta el nombre sin importar mayúsculas ni tildes ("colon" → Colón).
func ParseArea(s string) (Area, bool) {
	key := foldKey(s)
	if key == "" {
		return "", false
	}
	for _, a := range Areas {
		if foldKey(string(a)) == key {
			return a, true
		}
	}
	return "", false
}

func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

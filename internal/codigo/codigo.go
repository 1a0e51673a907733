// Package codigo builds the human-readable master product codes:
// <PREFIJO>-<NNN>, where the prefix is the first three characters of the
// family name upper-cased and NNN a per-prefix sequence.
package codigo

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const largoPrefijo = 3

// Prefijo returns the code prefix for a family name. Leading/trailing spaces
// are ignored; names shorter than three characters use the whole name.
func Prefijo(nombreFamilia string) string {
	r := []rune(strings.TrimSpace(nombreFamilia))
	if len(r) > largoPrefijo {
		r = r[:largoPrefijo]
	}
	for i := range r {
		r[i] = unicode.ToUpper(r[i])
	}
	return string(r)
}

// Formatear renders prefijo and n as "PRE-007". Numbers past 999 keep all
// their digits.
func Formatear(prefijo string, n int) string {
	return fmt.Sprintf("%s-%03d", prefijo, n)
}

// Sufijo extracts the numeric suffix of a code carrying prefijo.
func Sufijo(codigo, prefijo string) (int, bool) {
	resto, ok := strings.CutPrefix(codigo, prefijo+"-")
	if !ok || resto == "" {
		return 0, false
	}
	n, err := strconv.Atoi(resto)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Comparar orders codes by prefix, then by numeric suffix, so "ROS-999"
// sorts before "ROS-1000". Codes without a numeric suffix compare as text.
func Comparar(a, b string) int {
	pa, na, oka := partir(a)
	pb, nb, okb := partir(b)
	if !oka || !okb || pa != pb {
		return strings.Compare(a, b)
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}

func partir(c string) (string, int, bool) {
	i := strings.LastIndex(c, "-")
	if i < 0 {
		return c, 0, false
	}
	n, ok := Sufijo(c, c[:i])
	return c[:i], n, ok
}

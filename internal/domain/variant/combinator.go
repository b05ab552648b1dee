// Package variant genera las combinaciones de variantes SKU de un producto a partir
// de sus atributos (color, tamaño, ...) más la sucursal como atributo implícito.
package variant

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/vallas-erp/internal/domain"
)

// Attribute atributo de producto con sus valores posibles, en orden.
type Attribute struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Pair asignación de un valor a un atributo.
type Pair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Combination una asignación de exactamente un valor por atributo, en el orden de los atributos.
type Combination []Pair

// Map devuelve la combinación como mapa atributo→valor.
func (c Combination) Map() map[string]string {
	m := make(map[string]string, len(c))
	for _, p := range c {
		m[p.Name] = p.Value
	}
	return m
}

// Key clave canónica por contenido (atributo=valor unidos por "|"). Los separadores
// y la barra invertida dentro de nombres o valores se escapan, así dos combinaciones
// distintas nunca comparten clave.
func (c Combination) Key() string {
	var b strings.Builder
	for i, p := range c {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(keyEscaper.Replace(p.Name))
		b.WriteByte('=')
		b.WriteString(keyEscaper.Replace(p.Value))
	}
	return b.String()
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`, "=", `\=`)

// Label valores unidos por " / " (p. ej. "Rojo / M / Branch A").
func (c Combination) Label() string {
	vals := make([]string, len(c))
	for i, p := range c {
		vals[i] = p.Value
	}
	return strings.Join(vals, " / ")
}

var colorSuffix = regexp.MustCompile(`:#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)

// NormalizeValue quita espacios, el sufijo de color "Nombre:#RRGGBB" y normaliza a NFC.
func NormalizeValue(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return strings.TrimSpace(colorSuffix.ReplaceAllString(s, ""))
}

// Normalize limpia los atributos: nombres y valores normalizados, valores vacíos
// descartados, duplicados eliminados (se conserva la primera aparición) y atributos
// con el mismo nombre fusionados en la posición del primero.
func Normalize(attrs []Attribute) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	index := make(map[string]int, len(attrs))
	seen := make(map[string]map[string]struct{}, len(attrs))
	for _, a := range attrs {
		name := norm.NFC.String(strings.TrimSpace(a.Name))
		if name == "" {
			continue
		}
		pos, ok := index[name]
		if !ok {
			pos = len(out)
			index[name] = pos
			seen[name] = make(map[string]struct{})
			out = append(out, Attribute{Name: name})
		}
		for _, v := range a.Values {
			v = NormalizeValue(v)
			if v == "" {
				continue
			}
			if _, dup := seen[name][v]; dup {
				continue
			}
			seen[name][v] = struct{}{}
			out[pos].Values = append(out[pos].Values, v)
		}
	}
	return out
}

// Combine devuelve el producto cartesiano de los atributos normalizados con branch
// agregado siempre al final. El atributo más a la izquierda varía más lento.
// Sin atributos de producto no hay combinaciones; si algún atributo queda sin valores,
// el producto es vacío. Si la cantidad supera maxCombos (o no cabe en un int) devuelve un
// *domain.ValidationError sin generar nada; maxCombos <= 0 solo controla el desborde.
func Combine(attrs []Attribute, branch Attribute, maxCombos int) ([]Combination, error) {
	all := WithBranch(attrs, branch)
	if len(all) == 0 {
		return nil, nil
	}
	total, ok := Count(all)
	if !ok || (maxCombos > 0 && total > maxCombos) {
		limit := "el máximo representable"
		if maxCombos > 0 {
			limit = fmt.Sprintf("el máximo %d", maxCombos)
		}
		return nil, domain.NewValidationError("variantes", fmt.Sprintf("la receta genera %s combinaciones, supera %s", describeCount(all), limit))
	}
	if total == 0 {
		return nil, nil
	}

	out := make([]Combination, 0, total)
	idx := make([]int, len(all))
	for {
		c := make(Combination, len(all))
		for i, a := range all {
			c[i] = Pair{Name: a.Name, Value: a.Values[idx[i]]}
		}
		out = append(out, c)

		// odómetro: avanza el último atributo y acarrea hacia la izquierda
		i := len(all) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(all[i].Values) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out, nil
		}
	}
}

// WithBranch normaliza la receta y agrega branch al final, salvo que la receta ya
// tenga un atributo con ese nombre. Sin atributos de producto devuelve nil.
func WithBranch(attrs []Attribute, branch Attribute) []Attribute {
	all := Normalize(attrs)
	if len(all) == 0 {
		return nil
	}
	if b := Normalize([]Attribute{branch}); len(b) == 1 {
		if _, clash := findAttr(all, b[0].Name); !clash {
			all = append(all, b[0])
		}
	}
	return all
}

// Count cantidad de combinaciones: producto de la cantidad de valores de cada atributo.
// ok es false si el producto no cabe en un int.
func Count(attrs []Attribute) (n int, ok bool) {
	if len(attrs) == 0 {
		return 0, true
	}
	for _, a := range attrs {
		if len(a.Values) == 0 {
			return 0, true
		}
	}
	n = 1
	for _, a := range attrs {
		k := len(a.Values)
		if n > math.MaxInt/k {
			return 0, false
		}
		n *= k
	}
	return n, true
}

// describeCount "2x3x4" para mensajes de error.
func describeCount(attrs []Attribute) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = fmt.Sprint(len(a.Values))
	}
	return strings.Join(parts, "x")
}

func findAttr(attrs []Attribute, name string) (int, bool) {
	for i, a := range attrs {
		if a.Name == name {
			return i, true
		}
	}
	return -1, false
}

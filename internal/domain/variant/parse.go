package variant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/vallas-erp/internal/domain"
)

// ParseAttributes es el único punto de entrada para el campo "variantes" de la receta.
// Acepta:
//   - un arreglo: [{"nombre":"Color","valores":["Rojo","Azul"]}, ...] (también name/values,
//     y valores como texto separado por comas);
//   - un objeto:  {"Color":["Rojo","Azul"], "Tamaño":"S,M"} (se respeta el orden de las claves);
//   - cualquiera de los anteriores codificado como texto JSON.
//
// null o vacío devuelve nil sin error.
func ParseAttributes(raw json.RawMessage) ([]Attribute, error) {
	return parse(raw, 0)
}

func parse(raw []byte, depth int) ([]Attribute, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '"':
		if depth > 0 {
			return nil, invalid("texto JSON anidado más de una vez")
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid(err.Error())
		}
		return parse([]byte(s), depth+1)
	case '[':
		return parseArray(raw)
	case '{':
		return parseObject(raw)
	default:
		return nil, invalid("se esperaba arreglo u objeto")
	}
}

type rawAttribute struct {
	Name    string          `json:"name"`
	Nombre  string          `json:"nombre"`
	Values  json.RawMessage `json:"values"`
	Valores json.RawMessage `json:"valores"`
}

func parseArray(raw []byte) ([]Attribute, error) {
	var items []rawAttribute
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, invalid(err.Error())
	}
	out := make([]Attribute, 0, len(items))
	for i, it := range items {
		name := it.Name
		if name == "" {
			name = it.Nombre
		}
		if strings.TrimSpace(name) == "" {
			return nil, invalid(fmt.Sprintf("atributo %d sin nombre", i))
		}
		vals := it.Values
		if len(vals) == 0 {
			vals = it.Valores
		}
		values, err := parseValues(vals)
		if err != nil {
			return nil, err
		}
		out = append(out, Attribute{Name: name, Values: values})
	}
	return out, nil
}

// parseObject recorre los tokens para conservar el orden de las claves.
func parseObject(raw []byte) ([]Attribute, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, invalid(err.Error())
	}
	var out []Attribute
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, invalid(err.Error())
		}
		name, _ := tok.(string)
		var vals json.RawMessage
		if err := dec.Decode(&vals); err != nil {
			return nil, invalid(err.Error())
		}
		values, err := parseValues(vals)
		if err != nil {
			return nil, err
		}
		out = append(out, Attribute{Name: name, Values: values})
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, invalid(err.Error())
	}
	return out, nil
}

func parseValues(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, invalid(err.Error())
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			var s string
			if err := json.Unmarshal(it, &s); err == nil {
				out = append(out, s)
				continue
			}
			var n json.Number
			if err := json.Unmarshal(it, &n); err != nil {
				return nil, invalid("valor de atributo no es texto ni número")
			}
			out = append(out, n.String())
		}
		return out, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid(err.Error())
		}
		return strings.Split(s, ","), nil
	default:
		return nil, invalid("valores de atributo deben ser arreglo o texto")
	}
}

func invalid(reason string) error {
	return domain.NewValidationError("variantes", reason)
}

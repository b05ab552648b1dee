package variant_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/variant"
)

func TestParseAttributes_FormasEquivalentes(t *testing.T) {
	want := []variant.Attribute{
		{Name: "Color", Values: []string{"Rojo", "Azul"}},
		{Name: "Tamaño", Values: []string{"S", "M"}},
	}
	inputs := map[string]string{
		"arreglo":         `[{"nombre":"Color","valores":["Rojo","Azul"]},{"name":"Tamaño","values":["S","M"]}]`,
		"objeto":          `{"Color":["Rojo","Azul"],"Tamaño":"S,M"}`,
		"texto de objeto": `"{\"Color\":[\"Rojo\",\"Azul\"],\"Tamaño\":[\"S\",\"M\"]}"`,
		"texto arreglo":   `"[{\"nombre\":\"Color\",\"valores\":\"Rojo,Azul\"},{\"nombre\":\"Tamaño\",\"valores\":[\"S\",\"M\"]}]"`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := variant.ParseAttributes(json.RawMessage(in))
			require.NoError(t, err)
			assert.Equal(t, want, variant.Normalize(got))
		})
	}
}

func TestParseAttributes_ObjetoConservaOrdenDeClaves(t *testing.T) {
	got, err := variant.ParseAttributes(json.RawMessage(`{"Z":["1"],"A":["2"],"M":["3"]}`))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Z", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
	assert.Equal(t, "M", got[2].Name)
}

func TestParseAttributes_ValoresNumericos(t *testing.T) {
	got, err := variant.ParseAttributes(json.RawMessage(`{"Ancho":[3, 4.5]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4.5"}, got[0].Values)
}

func TestParseAttributes_VacioONull(t *testing.T) {
	for _, in := range []string{``, `null`, `  `, `"null"`} {
		got, err := variant.ParseAttributes(json.RawMessage(in))
		require.NoError(t, err, in)
		assert.Nil(t, got)
	}
}

func TestParseAttributes_Invalido(t *testing.T) {
	for _, in := range []string{`42`, `[{"valores":["x"]}]`, `{"Color":{"x":1}}`, `"\"[]\""`, `[1,2`} {
		_, err := variant.ParseAttributes(json.RawMessage(in))
		assert.ErrorIs(t, err, domain.ErrValidation, in)
	}
}

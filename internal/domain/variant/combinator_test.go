package variant_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/variant"
)

var testBranch = variant.Attribute{Name: "Branch", Values: []string{"Branch A", "Branch B"}}

const testMax = 10000

func combine(t *testing.T, attrs []variant.Attribute) []variant.Combination {
	t.Helper()
	out, err := variant.Combine(attrs, testBranch, testMax)
	require.NoError(t, err)
	return out
}

// sameValues n atributos con los mismos valores.
func sameValues(n int, values ...string) []variant.Attribute {
	attrs := make([]variant.Attribute, n)
	for i := range attrs {
		attrs[i] = variant.Attribute{Name: fmt.Sprintf("A%02d", i), Values: values}
	}
	return attrs
}

func TestCombine_Cardinalidad(t *testing.T) {
	attrs := []variant.Attribute{
		{Name: "Color", Values: []string{"Rojo", "Azul", "Verde"}},
		{Name: "Tamaño", Values: []string{"S", "M"}},
		{Name: "Material", Values: []string{"Lona", "Vinilo", "PVC", "Tela"}},
	}

	combos := combine(t, attrs)
	require.Len(t, combos, 3*2*4*2)

	seen := make(map[string]bool)
	for _, c := range combos {
		require.Len(t, c, 4, "cada combinación cubre todos los atributos una vez")
		assert.False(t, seen[c.Key()], "combinación repetida: %s", c.Key())
		seen[c.Key()] = true
	}
}

func TestCombine_OrdenLexicografico(t *testing.T) {
	attrs := []variant.Attribute{
		{Name: "Color", Values: []string{"Rojo", "Azul"}},
		{Name: "Tamaño", Values: []string{"S", "M"}},
	}
	combos := combine(t, attrs)

	var labels []string
	for _, c := range combos {
		labels = append(labels, c.Label())
	}
	assert.Equal(t, []string{
		"Rojo / S / Branch A", "Rojo / S / Branch B",
		"Rojo / M / Branch A", "Rojo / M / Branch B",
		"Azul / S / Branch A", "Azul / S / Branch B",
		"Azul / M / Branch A", "Azul / M / Branch B",
	}, labels)
	assert.Equal(t, "Branch", combos[0][2].Name, "la sucursal siempre va al final")
}

func TestCombine_Determinista(t *testing.T) {
	attrs := []variant.Attribute{
		{Name: "Color", Values: []string{"Blanco Brillo:#fffcfc", "Negro"}},
		{Name: "Cara", Values: []string{"Simple", "Doble"}},
	}
	a := combine(t, attrs)
	b := combine(t, attrs)
	assert.Equal(t, a, b)
}

func TestCombine_QuitaCodigoDeColor(t *testing.T) {
	attrs := []variant.Attribute{{Name: "Color", Values: []string{"Blanco Brillo:#fffcfc"}}}
	combos := combine(t, attrs)
	require.Len(t, combos, 2)
	assert.Equal(t, "Blanco Brillo", combos[0].Map()["Color"])
	assert.Equal(t, "Blanco Brillo", variant.NormalizeValue("Blanco Brillo:#fffcfc"))
	assert.Equal(t, "Rojo", variant.NormalizeValue(" Rojo:#F00 "))
	assert.Equal(t, "Ratio 16:9", variant.NormalizeValue("Ratio 16:9"))
}

func TestCombine_EliminaDuplicados(t *testing.T) {
	attrs := []variant.Attribute{
		{Name: "Color", Values: []string{"Rojo", "Rojo:#ff0000", "Azul", " Azul ", ""}},
	}
	combos := combine(t, attrs)
	assert.Len(t, combos, 2*2)
}

func TestCombine_SinAtributosNoGeneraCombinaciones(t *testing.T) {
	assert.Empty(t, combine(t, nil))
	assert.Empty(t, combine(t, []variant.Attribute{}))
}

func TestCombine_AtributoSinValoresAnulaElProducto(t *testing.T) {
	attrs := []variant.Attribute{
		{Name: "Color", Values: []string{"Rojo"}},
		{Name: "Tamaño"},
	}
	assert.Empty(t, combine(t, attrs))
}

func TestNormalize_FusionaAtributosRepetidos(t *testing.T) {
	out := variant.Normalize([]variant.Attribute{
		{Name: "Color", Values: []string{"Rojo"}},
		{Name: "Tamaño", Values: []string{"S"}},
		{Name: " Color ", Values: []string{"Azul", "Rojo"}},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "Color", out[0].Name)
	assert.Equal(t, []string{"Rojo", "Azul"}, out[0].Values)
}

func TestCombine_SuperaElMaximo(t *testing.T) {
	attrs := sameValues(8, "0", "1", "2", "3", "4", "5", "6", "7", "8", "9")

	out, err := variant.Combine(attrs, testBranch, testMax)
	assert.Nil(t, out)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "variantes", verr.Field)

	out, err = variant.Combine(sameValues(3, "a", "b"), testBranch, 16)
	require.NoError(t, err)
	assert.Len(t, out, 16, "el máximo es inclusivo")
}

func TestCombine_DesbordeNoSeSilencia(t *testing.T) {
	_, err := variant.Combine(sameValues(63, "a", "b"), testBranch, 0)
	assert.ErrorIs(t, err, domain.ErrValidation, "2^64 no se confunde con cero")

	_, err = variant.Combine(sameValues(41, "a", "b", "c"), testBranch, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCount(t *testing.T) {
	n, ok := variant.Count(sameValues(3, "a", "b", "c"))
	assert.True(t, ok)
	assert.Equal(t, 27, n)

	_, ok = variant.Count(sameValues(64, "a", "b"))
	assert.False(t, ok)

	n, ok = variant.Count(append(sameValues(64, "a", "b"), variant.Attribute{Name: "Vacío"}))
	assert.True(t, ok, "un atributo sin valores anula el producto")
	assert.Zero(t, n)
}

func TestKey_SeparadoresEnValoresNoColisionan(t *testing.T) {
	a := variant.Combination{{Name: "A", Value: "1"}, {Name: "B", Value: "2|B=x"}}
	b := variant.Combination{{Name: "A", Value: "1|B=2"}, {Name: "B", Value: "x"}}
	assert.NotEqual(t, a.Key(), b.Key())

	c := variant.Combination{{Name: "A", Value: `x\`}, {Name: "B", Value: "y"}}
	d := variant.Combination{{Name: "A", Value: `x\|B=y`}}
	assert.NotEqual(t, c.Key(), d.Key())

	assert.Equal(t, "Color=Rojo|Branch=Branch A", variant.Combination{{Name: "Color", Value: "Rojo"}, {Name: "Branch", Value: "Branch A"}}.Key())
}

func TestCombine_ValoresConSeparadoresGeneranClavesUnicas(t *testing.T) {
	attrs := []variant.Attribute{
		{Name: "A", Values: []string{"1", "1|B=2"}},
		{Name: "B", Values: []string{"2|B=x", "x"}},
	}
	seen := map[string]bool{}
	for _, c := range combine(t, attrs) {
		assert.False(t, seen[c.Key()], "clave repetida: %s", c.Key())
		seen[c.Key()] = true
	}
	assert.Len(t, seen, 2*2*2)
}

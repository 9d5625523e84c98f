package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Chocolate Cake", "chocolate-cake"},
		{"accents", "Tarta de Limón", "tarta-de-limon"},
		{"enye", "Piña Colada", "pina-colada"},
		{"umlaut", "Crème Brülée", "creme-brulee"},
		{"punctuation", "Brownie (x6)!", "brownie-x6"},
		{"whitespace runs", "  Alfajor   de  Maicena  ", "alfajor-de-maicena"},
		{"existing hyphens", "red--velvet---cupcake", "red-velvet-cupcake"},
		{"leading trailing", "- Trufas -", "trufas"},
		{"numbers", "Caja 12 Bombones", "caja-12-bombones"},
		{"empty", "", ""},
		{"only symbols", "¡¿!?", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Tarta de Limón",
		"Piña Colada",
		"  Alfajor   de  Maicena  ",
		"red--velvet---cupcake",
		"Caja 12 Bombones",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "input %q", in)
	}
}

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input    string
		expected Format
	}{
		{"", TextFormat},
		{"text", TextFormat},
		{"TXT", TextFormat},
		{"jSOn", JSONFormat},
		{"yml", YAMLFormat},
		{" yaml ", YAMLFormat},
		{"table", UnknownFormat},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			assert.Equal(t, c.expected, Parse(c.input))
		})
	}
}

package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upper is a test codec that stores JSON under a different name.
type upper struct{ JSON }

func (upper) Name() string { return "json-upper" }

func TestByName(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{"json", true},
		{"msgpack", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ByName(tt.name)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.name, c.Name())
			}
		})
	}
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register(upper{}))
	t.Cleanup(func() {
		mu.Lock()
		delete(registry, "json-upper")
		mu.Unlock()
	})

	c, ok := ByName("json-upper")
	require.True(t, ok)
	assert.Equal(t, "json-upper", c.Name())
	assert.Contains(t, Names(), "json-upper")

	assert.ErrorIs(t, Register(upper{}), ErrDuplicate)
	assert.ErrorIs(t, Register(JSON{}), ErrDuplicate)
	assert.Error(t, Register(nil))
}

func TestJSONRoundTrip(t *testing.T) {
	type header struct {
		Name    string `json:"name"`
		Version int    `json:"version"`
	}

	data, err := Default.Marshal(header{Name: "MAME", Version: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"MAME","version":3}`, string(data))

	var got header
	require.NoError(t, Default.Unmarshal(data, &got))
	assert.Equal(t, header{Name: "MAME", Version: 3}, got)
}

func TestJSONMarshalError(t *testing.T) {
	_, err := JSON{}.Marshal(make(chan int))
	var unsupported *json.UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

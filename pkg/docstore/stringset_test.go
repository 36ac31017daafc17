package docstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet_Union(t *testing.T) {
	base := StringSet{"a", "b"}

	got := base.Union("b", "c", "c")

	assert.Equal(t, StringSet{"a", "b", "c"}, got)
	assert.Equal(t, StringSet{"a", "b"}, base, "receiver must not change")
}

func TestStringSet_ValueAndScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want StringSet
	}{
		{name: "string", src: `["x","y"]`, want: StringSet{"x", "y"}},
		{name: "bytes", src: []byte(`["x"]`), want: StringSet{"x"}},
		{name: "nil", src: nil, want: StringSet{}},
		{name: "json null", src: "null", want: StringSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSet
			require.NoError(t, s.Scan(tt.src))
			assert.Equal(t, tt.want, s)
		})
	}

	var s StringSet
	assert.Error(t, s.Scan(42))

	v, err := StringSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringSet_MarshalJSON_Nil(t *testing.T) {
	b, err := json.Marshal(struct {
		IDs StringSet `json:"ids"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ids":[]}`, string(b))
}

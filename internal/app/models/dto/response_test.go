package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableFloatUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *float64
	}{
		{"number", `{"minBudget": 50000}`, float64Ptr(50000)},
		{"numeric string", `{"minBudget": "50000.5"}`, float64Ptr(50000.5)},
		{"empty string", `{"minBudget": ""}`, nil},
		{"null", `{"minBudget": null}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				MinBudget NullableFloat `json:"minBudget"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.input), &payload))
			if tc.want == nil {
				assert.Nil(t, payload.MinBudget.Value)
			} else {
				require.NotNil(t, payload.MinBudget.Value)
				assert.Equal(t, *tc.want, *payload.MinBudget.Value)
			}
		})
	}
}

func TestNullableFloatUnmarshalRejectsGarbage(t *testing.T) {
	var n NullableFloat
	assert.Error(t, json.Unmarshal([]byte(`"not a number"`), &n))
}

func TestNullableFloatMarshal(t *testing.T) {
	out, err := json.Marshal(NullableFloat{Value: float64Ptr(1200.5)})
	require.NoError(t, err)
	assert.Equal(t, "1200.5", string(out))

	out, err = json.Marshal(NullableFloat{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func float64Ptr(v float64) *float64 { return &v }

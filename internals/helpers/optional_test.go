package helper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionalPayload struct {
	Name    Optional[string]  `json:"name"`
	Breeder Optional[string]  `json:"breeder"`
	Days    Optional[int]     `json:"days"`
	THC     Optional[float64] `json:"thc"`
}

func TestOptionalAbsentNullValue(t *testing.T) {
	var p optionalPayload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Blue Dream","breeder":null,"days":63}`), &p))

	// present with a value
	assert.True(t, p.Name.Present)
	require.NotNil(t, p.Name.Value)
	assert.Equal(t, "Blue Dream", *p.Name.Value)
	assert.True(t, p.Name.IsSet())

	// present as explicit null
	assert.True(t, p.Breeder.Present)
	assert.Nil(t, p.Breeder.Value)
	assert.False(t, p.Breeder.IsSet())

	// absent from the payload entirely
	assert.False(t, p.THC.Present)
	assert.False(t, p.THC.IsSet())

	v, ok := p.Days.Get()
	assert.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, 63, *v)
}

func TestOptionalTypeMismatch(t *testing.T) {
	var p optionalPayload
	err := json.Unmarshal([]byte(`{"days":"not-a-number"}`), &p)
	assert.Error(t, err)
}

func TestOptionalConstructors(t *testing.T) {
	set := Set(21.5)
	assert.True(t, set.IsSet())
	assert.Equal(t, 21.5, *set.Value)

	null := SetNull[string]()
	assert.True(t, null.Present)
	assert.Nil(t, null.Value)
}

func TestOptionalMarshal(t *testing.T) {
	b, err := json.Marshal(Set("hybrid"))
	assert.NoError(t, err)
	assert.Equal(t, `"hybrid"`, string(b))

	b, err = json.Marshal(SetNull[string]())
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(Optional[string]{})
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

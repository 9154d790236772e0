package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Engineer Optional[string] `json:"assignedEngineer"`
	StartTs  Optional[*int64] `json:"startTs"`
}

func TestOptional_AbsentVsPresent(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"assignedEngineer": ""}`), &p))

	assert.True(t, p.Engineer.Set)
	assert.Equal(t, "", p.Engineer.Value)
	assert.False(t, p.StartTs.Set)
}

func TestOptional_NullIsPresent(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"assignedEngineer": null, "startTs": null}`), &p))

	assert.True(t, p.Engineer.Set)
	assert.Equal(t, "", p.Engineer.Value)
	assert.True(t, p.StartTs.Set)
	assert.Nil(t, p.StartTs.Value)
}

func TestOptional_Value(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"startTs": 1700000000000}`), &p))

	v, ok := p.StartTs.Get()
	require.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, int64(1700000000000), *v)
}

func TestOptional_InvalidType(t *testing.T) {
	var p patch
	assert.Error(t, json.Unmarshal([]byte(`{"startTs": "soon"}`), &p))
}

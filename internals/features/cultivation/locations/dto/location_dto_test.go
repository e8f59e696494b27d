package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lModel "growlog_backend/internals/features/cultivation/locations/model"
)

func TestCreateLocationRequestToModel(t *testing.T) {
	owner := uuid.New()

	t.Run("defaults to room", func(t *testing.T) {
		r := CreateLocationRequest{LocationName: "Veg Room A"}
		m := r.ToModel(owner)
		assert.Equal(t, lModel.LocationTypeRoom, m.LocationType)
		assert.Equal(t, owner, m.LocationOwnerID)
		assert.Nil(t, m.LocationCapacity)
	})

	t.Run("explicit type wins", func(t *testing.T) {
		lt := lModel.LocationTypeGreenhouse
		capacity := 48
		r := CreateLocationRequest{
			LocationName:     "North Greenhouse",
			LocationType:     &lt,
			LocationCapacity: &capacity,
		}
		m := r.ToModel(owner)
		assert.Equal(t, lModel.LocationTypeGreenhouse, m.LocationType)
		assert.Equal(t, &capacity, m.LocationCapacity)
	})
}

func TestUpdateLocationRequestApplyToModel(t *testing.T) {
	capacity := 20
	m := &lModel.LocationModel{
		LocationName:     "Veg Room A",
		LocationType:     lModel.LocationTypeRoom,
		LocationCapacity: &capacity,
	}

	var r UpdateLocationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"location_type":"tent","location_capacity":null}`), &r))
	require.NoError(t, r.Validate())

	r.ApplyToModel(m)
	assert.Equal(t, "Veg Room A", m.LocationName)
	assert.Equal(t, lModel.LocationTypeTent, m.LocationType)
	assert.Nil(t, m.LocationCapacity)
}

func TestUpdateLocationRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"location_name":"Dry Room","location_type":"outdoor"}`, false},
		{"name null", `{"location_name":null}`, true},
		{"name too short", `{"location_name":"X"}`, true},
		{"type unknown", `{"location_type":"closet"}`, true},
		{"type null", `{"location_type":null}`, true},
		{"capacity zero", `{"location_capacity":0}`, true},
		{"capacity null allowed", `{"location_capacity":null}`, false},
		{"empty payload", `{}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r UpdateLocationRequest
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &r))
			err := r.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLocationResponse(t *testing.T) {
	m := &lModel.LocationModel{
		LocationID:   uuid.New(),
		LocationName: "Veg Room A",
		LocationType: lModel.LocationTypeRoom,
	}
	resp := NewLocationResponse(m)
	require.NotNil(t, resp)
	assert.Equal(t, m.LocationID, resp.LocationID)

	assert.Nil(t, NewLocationResponse(nil))
}

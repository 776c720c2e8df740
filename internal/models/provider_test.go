// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringTolerance(t *testing.T) {
	var data ProviderData

	// The provider sends "code" as a string, a number or occasionally a
	// bool depending on the revision.
	require.NoError(t, json.Unmarshal([]byte(`{"code":"00"}`), &data))
	assert.Equal(t, "00", data.Code.String())

	require.NoError(t, json.Unmarshal([]byte(`{"code":7}`), &data))
	assert.Equal(t, "7", data.Code.String())

	require.NoError(t, json.Unmarshal([]byte(`{"code":true}`), &data))
	assert.Equal(t, "true", data.Code.String())

	require.NoError(t, json.Unmarshal([]byte(`{"code":null}`), &data))
	assert.Equal(t, "", data.Code.String())
}

func TestProviderDataNestedPerson(t *testing.T) {
	raw := `{
		"code": "00",
		"verified": "TRUE",
		"person": {
			"fullName": "Ama Serwaa Mensah",
			"addresses": [{"town": "Accra", "gpsAddressDetails": {"gpsName": "GA-123-4567"}}]
		}
	}`

	var data ProviderData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	require.NotNil(t, data.Person)
	assert.Equal(t, "Ama Serwaa Mensah", data.Person.FullName)
	require.Len(t, data.Person.Addresses, 1)
	require.NotNil(t, data.Person.Addresses[0].GPSAddressDetails)
	assert.Equal(t, "GA-123-4567", data.Person.Addresses[0].GPSAddressDetails.GPSName)
}

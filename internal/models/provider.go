// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString decodes a JSON value that may arrive as a string, number or
// bool. The provider is not consistent about the type of its "code" field.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatBool(b))
	return nil
}

func (f FlexString) String() string { return string(f) }

// ProviderData is the verification payload as returned by the provider.
// Depending on the provider revision it appears either at the top level of
// the response or nested under a "data" key.
type ProviderData struct { //nolint:govet // fieldalignment: readability over optimization
	Code              FlexString `json:"code"`
	Success           *bool      `json:"success"`
	Verified          string     `json:"verified"`
	TransactionGUID   string     `json:"transactionGuid"`
	ShortGUID         string     `json:"shortGuid"`
	Source            string     `json:"source"`
	Center            string     `json:"center"`
	UserID            string     `json:"userID"`
	RequestTimestamp  string     `json:"requestTimestamp"`
	ResponseTimestamp string     `json:"responseTimestamp"`
	Message           string     `json:"message"`
	Msg               string     `json:"msg"`
	Person            *Person    `json:"person"`
}

// Person holds the identity-card attributes returned on approval.
type Person struct { //nolint:govet // fieldalignment: readability over optimization
	FullName      string    `json:"fullName,omitempty"`
	PINNumber     string    `json:"pinNumber,omitempty"`
	NationalID    string    `json:"nationalId,omitempty"`
	CardID        string    `json:"cardId,omitempty"`
	Surname       string    `json:"surname,omitempty"`
	Forenames     string    `json:"forenames,omitempty"`
	BirthDate     string    `json:"birthDate,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	Nationality   string    `json:"nationality,omitempty"`
	CardValidFrom string    `json:"cardValidFrom,omitempty"`
	CardValidTo   string    `json:"cardValidTo,omitempty"`
	Addresses     []Address `json:"addresses,omitempty"`
}

// Address is one entry of a person's address list.
type Address struct { //nolint:govet // fieldalignment: readability over optimization
	Type              string      `json:"type,omitempty"`
	Street            string      `json:"street,omitempty"`
	Town              string      `json:"town,omitempty"`
	Community         string      `json:"community,omitempty"`
	DistrictName      string      `json:"districtName,omitempty"`
	Region            string      `json:"region,omitempty"`
	CountryName       string      `json:"countryName,omitempty"`
	PostalCode        string      `json:"postalCode,omitempty"`
	AddressDigital    string      `json:"addressDigital,omitempty"`
	GPSAddressDetails *GPSAddress `json:"gpsAddressDetails,omitempty"`
}

// GPSAddress is the optional GPS label attached to an address.
type GPSAddress struct {
	GPSName string `json:"gpsName,omitempty"`
}

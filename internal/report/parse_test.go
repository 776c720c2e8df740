// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumn(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		col := parseColumn("")
		assert.Nil(t, col.root)
		assert.Nil(t, col.data)
	})

	t.Run("malformed json is swallowed", func(t *testing.T) {
		col := parseColumn("{not json")
		assert.Nil(t, col.root)
		assert.Nil(t, col.data)
	})

	t.Run("top level and envelope", func(t *testing.T) {
		col := parseColumn(`{"code":"00","data":{"transactionGuid":"txn-9"}}`)
		require.NotNil(t, col.root)
		assert.Equal(t, "00", col.root.Code.String())
		require.NotNil(t, col.data)
		assert.Equal(t, "txn-9", col.data.TransactionGUID)
	})
}

func TestExtractPersonPriority(t *testing.T) {
	personAt := func(where string) column {
		switch where {
		case "root":
			return parseColumn(`{"person":{"fullName":"` + where + `"}}`)
		case "data":
			return parseColumn(`{"data":{"person":{"fullName":"` + where + `"}}}`)
		}
		return column{}
	}

	t.Run("person column root wins", func(t *testing.T) {
		p, _ := extractPerson(personAt("root"), personAt("data"))
		require.NotNil(t, p)
		assert.Equal(t, "root", p.FullName)
	})

	t.Run("person column envelope before response column", func(t *testing.T) {
		p, env := extractPerson(personAt("data"), personAt("root"))
		require.NotNil(t, p)
		assert.Equal(t, "data", p.FullName)
		require.NotNil(t, env)
	})

	t.Run("response envelope before response root", func(t *testing.T) {
		responseCol := parseColumn(`{
			"person":{"fullName":"response-root"},
			"data":{"person":{"fullName":"response-data"}}
		}`)
		p, _ := extractPerson(column{}, responseCol)
		require.NotNil(t, p)
		assert.Equal(t, "response-data", p.FullName)
	})

	t.Run("nothing anywhere", func(t *testing.T) {
		p, env := extractPerson(column{}, column{})
		assert.Nil(t, p)
		assert.Nil(t, env)
	})
}

func TestRenderable(t *testing.T) {
	assert.True(t, renderable("Accra"))
	assert.False(t, renderable(""))
	assert.False(t, renderable("   "))
	assert.False(t, renderable("null"))
	assert.False(t, renderable("undefined"))
}

func TestFirstValue(t *testing.T) {
	assert.Equal(t, "b", firstValue("", "null", "b", "c"))
	assert.Equal(t, "", firstValue("undefined", ""))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "", formatTimestamp(""))
	assert.Equal(t, "garbage", formatTimestamp("garbage"), "unparseable values pass through")
	assert.Contains(t, formatTimestamp("2025-08-01T10:30:00Z"), "August 1, 2025")
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

func TestGetField(t *testing.T) {
	rec := entity.Record(`{
		"panNumber": "ABCDE1234F",
		"name": {"firstName": {"value": "Ravi", "valid": true}, "lastName": null},
		"dateOfBirth": {"value": "01/01/1990", "valid": false},
		"restrictions": ["A", null, "B"],
		"dd": ""
	}`)

	t.Run("raw scalar", func(t *testing.T) {
		v := GetField(rec, "panNumber")
		require.True(t, v.Present)
		require.False(t, v.Wrapped)
		require.Nil(t, v.Valid)
		require.Equal(t, "ABCDE1234F", v.Text)
	})

	t.Run("wrapped valid", func(t *testing.T) {
		v := GetField(rec, "name.firstName")
		require.True(t, v.Wrapped)
		require.NotNil(t, v.Valid)
		require.True(t, *v.Valid)
		require.Equal(t, "Ravi", v.Text)
	})

	t.Run("wrapped invalid", func(t *testing.T) {
		v := GetField(rec, "dateOfBirth")
		require.NotNil(t, v.Valid)
		require.False(t, *v.Valid)
	})

	t.Run("null leaf", func(t *testing.T) {
		v := GetField(rec, "name.lastName")
		require.False(t, v.Present)
		require.True(t, v.Empty())
	})

	t.Run("missing intermediate", func(t *testing.T) {
		v := GetField(rec, "address.city")
		require.Equal(t, Value{}, v)
	})

	t.Run("list", func(t *testing.T) {
		v := GetField(rec, "restrictions")
		require.True(t, v.IsList)
		require.Equal(t, []string{"A", "B"}, v.Items)
		require.Equal(t, "A, B", v.Text)
	})

	t.Run("blank string is empty", func(t *testing.T) {
		v := GetField(rec, "dd")
		require.True(t, v.Present)
		require.True(t, v.Empty())
	})

	t.Run("nil record", func(t *testing.T) {
		require.Equal(t, Value{}, GetField(nil, "panNumber"))
	})
}

func TestSetField_CreatesIntermediates(t *testing.T) {
	rec, err := SetField(entity.Record(`{"state":"KA"}`), "address.city", "Bengaluru")
	require.NoError(t, err)
	require.JSONEq(t, `{"state":"KA","address":{"city":"Bengaluru"}}`, rec.String())
	require.Equal(t, "Bengaluru", GetField(rec, "address.city").Text)
}

func TestSetField_DoesNotMutateInput(t *testing.T) {
	orig := entity.Record(`{"state":"KA"}`)
	_, err := SetField(orig, "state", "MH")
	require.NoError(t, err)
	require.Equal(t, `{"state":"KA"}`, orig.String())
}

func TestSetField_WrapperKeepsFlag(t *testing.T) {
	rec := entity.Record(`{"sex":{"value":"X","valid":false}}`)
	out, err := SetField(rec, "sex", "M")
	require.NoError(t, err)
	require.JSONEq(t, `{"sex":{"value":"M","valid":false}}`, out.String())
}

func TestSetField_ListSplitsOnComma(t *testing.T) {
	rec := entity.Record(`{"endorsements":{"value":["A"],"valid":true}}`)
	out, err := SetField(rec, "endorsements", "A, B , ,C")
	require.NoError(t, err)
	require.JSONEq(t, `{"endorsements":{"value":["A","B","C"],"valid":true}}`, out.String())
}

func TestSetField_KeepsKeyOrder(t *testing.T) {
	rec := entity.Record(`{"b":"1","a":"2"}`)
	out, err := SetField(rec, "b", "3")
	require.NoError(t, err)
	require.Equal(t, `{"b":"3","a":"2"}`, out.String())
}

func TestSetField_EmptyPath(t *testing.T) {
	_, err := SetField(entity.NewRecord(), " ", "x")
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestSetField_NilRecord(t *testing.T) {
	out, err := SetField(nil, "name.firstName", "Asha")
	require.NoError(t, err)
	require.JSONEq(t, `{"name":{"firstName":"Asha"}}`, out.String())
}

func TestEscapeKey(t *testing.T) {
	require.Equal(t, "plain", EscapeKey("plain"))
	require.Equal(t, `a\.b`, EscapeKey("a.b"))
	require.Equal(t, `x\*`, EscapeKey("x*"))
}

func TestSetListField(t *testing.T) {
	out, err := SetListField(entity.Record(`{"restrictions":null}`), "restrictions", "A, B")
	require.NoError(t, err)
	require.JSONEq(t, `{"restrictions":["A","B"]}`, out.String())

	out, err = SetListField(entity.Record(`{"restrictions":{"value":"old","valid":null}}`), "restrictions", "C")
	require.NoError(t, err)
	require.JSONEq(t, `{"restrictions":{"value":["C"],"valid":null}}`, out.String())

	out, err = SetField(entity.Record(`{"restrictions":null}`), "restrictions", "A, B")
	require.NoError(t, err)
	require.JSONEq(t, `{"restrictions":"A, B"}`, out.String())
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		dt      constants.DocumentType
		fields  string
		wantErr bool
	}{
		{"raw values", constants.PANCard, `{"panNumber":"ABCDE1234F","name":{"firstName":"A"}}`, false},
		{"wrapped values", constants.DrivingLicense, `{"dlNumber":{"value":"KA01 12345678901","valid":true},"restrictions":{"value":["A"],"valid":null}}`, false},
		{"null leaf", constants.AadhaarCard, `{"name":null,"address":{"pinCode":null}}`, false},
		{"unknown keys tolerated", constants.AadhaarCard, `{"extra":{"deep":1}}`, false},
		{"object where scalar expected", constants.PANCard, `{"panNumber":{"nested":true}}`, true},
		{"boolean leaf", constants.DrivingLicense, `{"sex":true}`, true},
		{"unsupported type", constants.DocumentType("passport"), `{}`, true},
		{"not json", constants.PANCard, `{`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.dt, []byte(tt.fields))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_WrapsValidationError(t *testing.T) {
	err := Validate(constants.PANCard, []byte(`{"panNumber":{"nested":true}}`))
	require.ErrorIs(t, err, common.ErrValidation)
}

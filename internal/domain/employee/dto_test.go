package employee

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployeeRequest_Salary(t *testing.T) {
	tests := []struct {
		body    string
		wantErr string
	}{
		{`{"name":"Ravi","email":"ravi@pmj.in","password":"secret123","salary":26000}`, ""},
		{`{"name":"Ravi","email":"ravi@pmj.in","password":"secret123","salary":26000.00}`, ""},
		{`{"name":"Ravi","email":"ravi@pmj.in","password":"secret123","salary":26000.5}`, "must be a whole amount"},
		{`{"name":"Ravi","email":"ravi@pmj.in","password":"secret123","salary":-1}`, "must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req CreateEmployeeRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantErr, verrs.ToMap()["salary"])
		})
	}
}

func TestUpdateEmployeeRequest_FractionalSalary(t *testing.T) {
	paise := decimal.RequireFromString("18000.75")
	req := UpdateEmployeeRequest{ID: "e1", Salary: &paise}

	var verrs validator.ValidationErrors
	require.True(t, errors.As(req.Validate(), &verrs))
	assert.Equal(t, "must be a whole amount", verrs.ToMap()["salary"])
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hishabkhata/cashbook-server/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing resource", domain.ErrNotFound, 404, "RESOURCE_NOT_FOUND"},
		{"missing account", domain.ErrAccountNotFound, 422, "ACCOUNT_NOT_FOUND"},
		{"wrapped missing account", fmt.Errorf("AdjustBalance: %w", domain.ErrAccountNotFound), 422, "ACCOUNT_NOT_FOUND"},
		{"duplicate email", domain.ErrEmailTaken, 409, "EMAIL_TAKEN"},
		{"version conflict", domain.ErrVersionConflict, 409, "VERSION_CONFLICT"},
		{"bad amount", domain.ErrInvalidAmount, 400, "INVALID_AMOUNT"},
		{"bad date", domain.ErrInvalidDate, 400, "INVALID_DATE"},
		{"bad transaction type", domain.ErrInvalidTransactionType, 400, "INVALID_TRANSACTION_TYPE"},
		{"bad account type", domain.ErrInvalidAccountType, 400, "INVALID_ACCOUNT_TYPE"},
		{"unknown error", fmt.Errorf("boom"), 500, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

func TestCreateTransactionRequestValidate(t *testing.T) {
	base := func() createTransactionRequest {
		var req createTransactionRequest
		require.NoError(t, json.Unmarshal([]byte(`{
			"account_id": "11111111-1111-1111-1111-111111111111",
			"date": "2026-03-10",
			"amount": 120.50,
			"type": "INCOME"
		}`), &req))
		return req
	}

	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, base().Validate())
	})

	t.Run("missing account", func(t *testing.T) {
		req := base()
		req.AccountID = uuid.Nil
		fields := req.Validate()
		require.Len(t, fields, 1)
		assert.Equal(t, "account_id", fields[0].Field)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := base()
		req.Date = "10-03-2026"
		fields := req.Validate()
		require.Len(t, fields, 1)
		assert.Equal(t, "date", fields[0].Field)
	})

	t.Run("malformed amount is a decode error", func(t *testing.T) {
		var req createTransactionRequest
		err := json.Unmarshal([]byte(`{"amount": "12,5"}`), &req)
		assert.Error(t, err)
	})
}

package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

type sampleRequest struct {
	Value     decimal.Decimal  `binding:"required,gt=0,money"`
	Used      *decimal.Decimal `binding:"omitempty,gte=0,money"`
	Method    string           `binding:"omitempty,payment_method_type"`
	Frequency string           `binding:"omitempty,recurring_frequency"`
	Type      string           `binding:"omitempty,investment_type"`
	Period    string           `binding:"omitempty,stats_period"`
	Digits    string           `binding:"omitempty,last_digits"`
}

func TestRegister(t *testing.T) {
	Register()

	negative := decimal.NewFromInt(-1)
	subCent := decimal.RequireFromString("0.001")
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr bool
	}{
		{"valid", sampleRequest{Value: decimal.NewFromFloat(10.5), Method: "pix", Frequency: "monthly", Type: "fixed_income", Period: "week", Digits: "1234"}, false},
		{"zero value", sampleRequest{Value: decimal.Zero}, true},
		{"negative value", sampleRequest{Value: decimal.NewFromInt(-5)}, true},
		{"negative used limit", sampleRequest{Value: decimal.NewFromInt(1), Used: &negative}, true},
		{"unknown payment method", sampleRequest{Value: decimal.NewFromInt(1), Method: "cheque"}, true},
		{"unknown frequency", sampleRequest{Value: decimal.NewFromInt(1), Frequency: "daily"}, true},
		{"unknown investment type", sampleRequest{Value: decimal.NewFromInt(1), Type: "bond"}, true},
		{"unknown period", sampleRequest{Value: decimal.NewFromInt(1), Period: "decade"}, true},
		{"short last digits", sampleRequest{Value: decimal.NewFromInt(1), Digits: "123"}, true},
		{"alpha last digits", sampleRequest{Value: decimal.NewFromInt(1), Digits: "12ab"}, true},
		{"two decimal places", sampleRequest{Value: decimal.RequireFromString("9999999999.99")}, false},
		{"trailing zeros", sampleRequest{Value: decimal.RequireFromString("10.500")}, false},
		{"sub-cent value", sampleRequest{Value: decimal.RequireFromString("0.004")}, true},
		{"three decimal places", sampleRequest{Value: decimal.RequireFromString("10.125")}, true},
		{"beyond column range", sampleRequest{Value: decimal.RequireFromString("10000000000")}, true},
		{"sub-cent used limit", sampleRequest{Value: decimal.NewFromInt(1), Used: &subCent}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

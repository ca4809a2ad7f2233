package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvojakarta/internal/catalog"
)

func validForm() PaymentForm {
	return PaymentForm{
		FirstName:   "Ana",
		LastName:    "Jovanović",
		Email:       "ana@example.com",
		Phone:       "+387 65 123 456",
		Address:     "Kralja Petra I 12",
		City:        "Banja Luka",
		PostalCode:  "78000",
		CardNumber:  "4242 4242 4242 4242",
		ExpiryDate:  "12/27",
		CVV:         "123",
		CardName:    "ANA JOVANOVIC",
		AcceptTerms: true,
	}
}

func TestFormValidator_AcceptsValidForm(t *testing.T) {
	assert.NoError(t, NewFormValidator().Validate(validForm(), catalog.LanguageSR))
}

func TestFormValidator_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *PaymentForm)
		field  string
		code   string
	}{
		{"missing city", func(f *PaymentForm) { f.City = "" }, "city", CodeRequired},
		{"missing card name", func(f *PaymentForm) { f.CardName = "" }, "card_name", CodeRequired},
		{"terms not accepted", func(f *PaymentForm) { f.AcceptTerms = false }, "accept_terms", CodeTerms},
		{"email without dot", func(f *PaymentForm) { f.Email = "ana@example" }, "email", CodeEmail},
		{"email with space", func(f *PaymentForm) { f.Email = "a na@example.com" }, "email", CodeEmail},
		{"15 digit card", func(f *PaymentForm) { f.CardNumber = "4242 4242 4242 424" }, "card_number", CodeCardNumber},
		{"17 digit card", func(f *PaymentForm) { f.CardNumber = "42424242424242424" }, "card_number", CodeCardNumber},
		{"card with letters", func(f *PaymentForm) { f.CardNumber = "4242 4242 4242 42ab" }, "card_number", CodeCardNumber},
		{"short cvv", func(f *PaymentForm) { f.CVV = "12" }, "cvv", CodeCVV},
		{"long cvv", func(f *PaymentForm) { f.CVV = "1234" }, "cvv", CodeCVV},
	}

	v := NewFormValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			err := v.Validate(f, catalog.LanguageEN)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.code, verr.Code)
			assert.Equal(t, Message(tt.code, catalog.LanguageEN), verr.Message)
		})
	}
}

func TestFormValidator_FirstFailureWins(t *testing.T) {
	v := NewFormValidator()

	f := validForm()
	f.CVV = "1"
	f.CardNumber = "1234"
	f.Email = "nope"
	f.AcceptTerms = false
	f.Phone = ""

	codes := []string{CodeRequired, CodeTerms, CodeEmail, CodeCardNumber, CodeCVV}
	fixes := []func(*PaymentForm){
		func(f *PaymentForm) { f.Phone = "065 123 456" },
		func(f *PaymentForm) { f.AcceptTerms = true },
		func(f *PaymentForm) { f.Email = "ana@example.com" },
		func(f *PaymentForm) { f.CardNumber = "4242424242424242" },
		func(f *PaymentForm) { f.CVV = "123" },
	}
	for i, code := range codes {
		var verr *ValidationError
		require.ErrorAs(t, v.Validate(f, catalog.LanguageSR), &verr)
		assert.Equal(t, code, verr.Code)
		fixes[i](&f)
	}
	assert.NoError(t, v.Validate(f, catalog.LanguageSR))
}

func TestFormValidator_SerbianMessage(t *testing.T) {
	f := validForm()
	f.CVV = ""

	var verr *ValidationError
	require.ErrorAs(t, NewFormValidator().Validate(f, catalog.LanguageSR), &verr)
	assert.Equal(t, "Molimo popunite sva potrebna polja", verr.Message)
}

func TestPaymentForm_CardLast4(t *testing.T) {
	assert.Equal(t, "4242", validForm().CardLast4())
	assert.Equal(t, "", PaymentForm{CardNumber: "12"}.CardLast4())
}

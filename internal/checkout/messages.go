package checkout

import "tvojakarta/internal/catalog"

const (
	CodeRequired   = "required_fields"
	CodeTerms      = "terms"
	CodeEmail      = "invalid_email"
	CodeCardNumber = "card_number"
	CodeCVV        = "cvv"
	CodePayment    = "payment"
	CodeSuccess    = "payment_success"
	CodeProcessing = "processing"
	CodeEmptyCart  = "cart_empty"
)

var messages = map[string]catalog.Text{
	CodeRequired: {
		SR: "Molimo popunite sva potrebna polja",
		EN: "Please fill in all required fields",
	},
	CodeTerms: {
		SR: "Morate prihvatiti Uslove korišćenja",
		EN: "You must accept the Terms of Service",
	},
	CodeEmail: {
		SR: "Unesite valjanu email adresu",
		EN: "Please enter a valid email address",
	},
	CodeCardNumber: {
		SR: "Broj kartice mora imati 16 cifara",
		EN: "Card number must have 16 digits",
	},
	CodeCVV: {
		SR: "CVV mora imati 3 cifre",
		EN: "CVV must have 3 digits",
	},
	CodePayment: {
		SR: "Došlo je do greške prilikom plaćanja. Pokušajte ponovo.",
		EN: "An error occurred during payment. Please try again.",
	},
	CodeProcessing: {
		SR: "Obrađuje se...",
		EN: "Processing...",
	},
	CodeEmptyCart: {
		SR: "Vaša korpa je prazna",
		EN: "Your cart is empty",
	},
	CodeSuccess: {
		SR: "Plaćanje je uspješno izvršeno! Vaše karte će biti poslane na email.",
		EN: "Payment successful! Your tickets will be sent to your email.",
	},
}

func Message(code string, lang catalog.Language) string {
	if m, ok := messages[code]; ok {
		return m.Get(lang)
	}
	return code
}

// Package checkout validates the checkout form before an order request is
// built. Validation failures are surfaced per field and block submission
// entirely; no network call is issued while any remain.
package checkout

import (
	"regexp"
	"strings"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
)

// Payment methods accepted at checkout.
const (
	PaymentCreditCard = "credit_card"
	PaymentPayPal     = "paypal"
	PaymentCash       = "cash"
)

var (
	emailRe  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	zipRe    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3,4}$`)
	digitRe  = regexp.MustCompile(`\D`)
)

// Form carries everything the checkout page collects.
type Form struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   domain.Address `json:"address"`

	PaymentMethod string `json:"paymentMethod"`
	CardNumber    string `json:"cardNumber"`
	CardExpiry    string `json:"cardExpiry"`
	CardCVV       string `json:"cardCvv"`
}

// Validate returns a field-to-message map; an empty map means the form may
// be submitted. Card fields are only checked when paying by credit card.
func Validate(f Form) map[string]string {
	errs := make(map[string]string)

	requireField(errs, "firstName", f.FirstName, "First name is required")
	requireField(errs, "lastName", f.LastName, "Last name is required")
	requireField(errs, "street", f.Address.Street, "Street address is required")
	requireField(errs, "city", f.Address.City, "City is required")
	requireField(errs, "state", f.Address.State, "State is required")
	requireField(errs, "country", f.Address.Country, "Country is required")

	switch {
	case strings.TrimSpace(f.Email) == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(f.Email):
		errs["email"] = "Email is invalid"
	}

	switch {
	case strings.TrimSpace(f.Phone) == "":
		errs["phone"] = "Phone number is required"
	case len(digitRe.ReplaceAllString(f.Phone, "")) != 10:
		errs["phone"] = "Phone number must have 10 digits"
	}

	switch {
	case strings.TrimSpace(f.Address.ZipCode) == "":
		errs["zipCode"] = "Zip code is required"
	case !zipRe.MatchString(f.Address.ZipCode):
		errs["zipCode"] = "Zip code is invalid"
	}

	switch f.PaymentMethod {
	case PaymentCreditCard:
		validateCard(errs, f)
	case PaymentPayPal, PaymentCash:
	default:
		errs["paymentMethod"] = "Payment method is invalid"
	}

	return errs
}

func validateCard(errs map[string]string, f Form) {
	switch {
	case strings.TrimSpace(f.CardNumber) == "":
		errs["cardNumber"] = "Card number is required"
	case len(digitRe.ReplaceAllString(f.CardNumber, "")) != 16:
		errs["cardNumber"] = "Card number must have 16 digits"
	}

	switch {
	case strings.TrimSpace(f.CardExpiry) == "":
		errs["cardExpiry"] = "Expiry date is required"
	case !expiryRe.MatchString(f.CardExpiry):
		errs["cardExpiry"] = "Expiry date must be MM/YY"
	}

	switch {
	case strings.TrimSpace(f.CardCVV) == "":
		errs["cardCvv"] = "CVV is required"
	case !cvvRe.MatchString(f.CardCVV):
		errs["cardCvv"] = "CVV must have 3 or 4 digits"
	}
}

func requireField(errs map[string]string, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

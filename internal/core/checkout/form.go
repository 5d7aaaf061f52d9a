// Package checkout holds the checkout form model and its validation rules,
// decoupled from any transport or rendering layer.
package checkout

// Field identifies a checkout form field.
type Field string

const (
	FieldFullName   Field = "fullName"
	FieldEmail      Field = "email"
	FieldAddress    Field = "address"
	FieldCity       Field = "city"
	FieldState      Field = "state"
	FieldZipCode    Field = "zipCode"
	FieldCountry    Field = "country"
	FieldCardNumber Field = "cardNumber"
	FieldCardName   Field = "cardName"
	FieldExpiryDate Field = "expiryDate"
	FieldCVV        Field = "cvv"
)

// fieldOrder is the display order of the form; full-form validation walks it
// top to bottom so error maps are built deterministically.
var fieldOrder = []Field{
	FieldFullName,
	FieldEmail,
	FieldAddress,
	FieldCity,
	FieldState,
	FieldZipCode,
	FieldCountry,
	FieldCardNumber,
	FieldCardName,
	FieldExpiryDate,
	FieldCVV,
}

// FormData is one checkout session's input. It is ephemeral: built per
// session and discarded on submit success, never persisted.
type FormData struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

func (f FormData) value(field Field) string {
	switch field {
	case FieldFullName:
		return f.FullName
	case FieldEmail:
		return f.Email
	case FieldAddress:
		return f.Address
	case FieldCity:
		return f.City
	case FieldState:
		return f.State
	case FieldZipCode:
		return f.ZipCode
	case FieldCountry:
		return f.Country
	case FieldCardNumber:
		return f.CardNumber
	case FieldCardName:
		return f.CardName
	case FieldExpiryDate:
		return f.ExpiryDate
	case FieldCVV:
		return f.CVV
	}
	return ""
}

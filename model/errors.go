package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, the way the storefront sends and reads them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Message keys resolved by the locale package.
const (
	MsgFillAllFields         = "fill_all_fields"
	MsgNameRequired          = "name_required"
	MsgCategoryRequired      = "category_required"
	MsgUnknownCategory       = "unknown_category"
	MsgInvalidPrice          = "invalid_price"
	MsgDiscountAboveRegular  = "discount_above_regular"
	MsgImageRequired         = "image_required"
	MsgInvalidImage          = "invalid_image"
	MsgImageTooLarge         = "image_too_large"
	MsgInvalidDeliveryCharge = "invalid_delivery_charge"
	MsgInvalidDeliveryZone   = "invalid_delivery_zone"
	MsgEmptyCart             = "empty_cart"
	MsgUnknownProduct        = "unknown_product"
	MsgInvalidQuantity       = "invalid_quantity"
	MsgInvalidStatus         = "invalid_status"
	MsgInvalidRole           = "invalid_role"
	MsgInvalidEmail          = "invalid_email"
	MsgCredentialsRequired   = "credentials_required"
	MsgPasswordTooShort      = "password_too_short"
	MsgPasswordTooLong       = "password_too_long"
	MsgPasswordTooWeak       = "password_too_weak"
	MsgInvalidRequest        = "invalid_request"
)

// ValidationError is a user-facing input error identified by a message key.
type ValidationError struct {
	Key   string
	Field string
}

func NewValidationError(key, field string) *ValidationError {
	return &ValidationError{Key: key, Field: field}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Key
	}
	return e.Field + ": " + e.Key
}

// AsValidation unwraps a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Package locale resolves the storefront's Bengali and English texts.
package locale

import (
	"net/http"

	"feriwala/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	English = language.English
	Bengali = language.Bengali

	supported = []language.Tag{English, Bengali}
	matcher   = language.NewMatcher(supported)
)

// Response messages that are not validation failures.
const (
	MsgOrderPlaced            = "order_placed"
	MsgOrderUpdated           = "order_updated"
	MsgNotFound               = "not_found"
	MsgAlreadyExists          = "already_exists"
	MsgInternalError          = "internal_error"
	MsgUnauthorized           = "unauthorized"
	MsgForbidden              = "forbidden"
	MsgInvalidCredentials     = "invalid_credentials"
	MsgCannotDeleteSuperAdmin = "cannot_delete_super_admin"
	MsgSaved                  = "saved"
	MsgDeleted                = "deleted"
	MsgInvoiceUnavailable     = "invoice_unavailable"
)

var messages = map[string][2]string{
	model.MsgFillAllFields:         {"Please fill in all fields", "সব ফিল্ড পূরণ করুন"},
	model.MsgNameRequired:          {"Name is required", "নাম আবশ্যক"},
	model.MsgCategoryRequired:      {"Category is required", "ক্যাটাগরি আবশ্যক"},
	model.MsgUnknownCategory:       {"Category not found", "ক্যাটাগরি পাওয়া যায়নি"},
	model.MsgInvalidPrice:          {"Price must be a non-negative number", "মূল্য সঠিক নয়"},
	model.MsgDiscountAboveRegular:  {"Discount price cannot exceed the regular price", "ছাড়ের মূল্য নিয়মিত মূল্যের বেশি হতে পারে না"},
	model.MsgImageRequired:         {"At least one image is required", "অন্তত একটি ছবি দিন"},
	model.MsgInvalidImage:          {"Only image files are allowed", "শুধুমাত্র ছবি আপলোড করা যাবে"},
	model.MsgImageTooLarge:         {"Image is too large", "ছবির আকার অনেক বড়"},
	model.MsgInvalidDeliveryCharge: {"Delivery charges must be non-negative numbers", "ডেলিভারি চার্জ সঠিক নয়"},
	model.MsgInvalidDeliveryZone:   {"Unknown delivery zone", "ডেলিভারি এলাকা সঠিক নয়"},
	model.MsgEmptyCart:             {"Your cart is empty", "আপনার কার্ট খালি"},
	model.MsgUnknownProduct:        {"Product not found", "পণ্য পাওয়া যায়নি"},
	model.MsgInvalidQuantity:       {"Quantity must be at least 1", "পরিমাণ অন্তত ১ হতে হবে"},
	model.MsgInvalidStatus:         {"Invalid order status", "অর্ডারের অবস্থা সঠিক নয়"},
	model.MsgInvalidRole:           {"Invalid role", "ভূমিকা সঠিক নয়"},
	model.MsgInvalidEmail:          {"Invalid email address", "ইমেইল সঠিক নয়"},
	model.MsgCredentialsRequired:   {"Email and password are required", "ইমেইল ও পাসওয়ার্ড দিন"},
	model.MsgPasswordTooShort:      {"Password must be at least 8 characters", "পাসওয়ার্ড অন্তত ৮ অক্ষরের হতে হবে"},
	model.MsgPasswordTooLong:       {"Password must be at most 72 bytes", "পাসওয়ার্ড সর্বোচ্চ ৭২ বাইটের হতে পারে"},
	model.MsgPasswordTooWeak: {
		"Password must contain upper and lower case letters, a digit and a special character",
		"পাসওয়ার্ডে বড় ও ছোট হাতের অক্ষর, সংখ্যা এবং বিশেষ চিহ্ন থাকতে হবে",
	},
	model.MsgInvalidRequest: {"Invalid request", "অনুরোধ সঠিক নয়"},

	MsgOrderPlaced:            {"Order placed successfully", "অর্ডার সফলভাবে সম্পন্ন হয়েছে"},
	MsgOrderUpdated:           {"Order status updated", "অর্ডারের অবস্থা হালনাগাদ হয়েছে"},
	MsgNotFound:               {"Not found", "পাওয়া যায়নি"},
	MsgAlreadyExists:          {"Already exists", "ইতিমধ্যে আছে"},
	MsgInternalError:          {"Something went wrong", "কিছু একটা ভুল হয়েছে"},
	MsgUnauthorized:           {"Please log in", "অনুগ্রহ করে লগইন করুন"},
	MsgForbidden:              {"You do not have permission", "আপনার অনুমতি নেই"},
	MsgInvalidCredentials:     {"Invalid email or password", "ইমেইল বা পাসওয়ার্ড ভুল"},
	MsgCannotDeleteSuperAdmin: {"A super admin cannot be deleted", "সুপার অ্যাডমিন মুছে ফেলা যাবে না"},
	MsgSaved:                  {"Saved", "সংরক্ষণ করা হয়েছে"},
	MsgDeleted:                {"Deleted", "মুছে ফেলা হয়েছে"},
	MsgInvoiceUnavailable:     {"The invoice could not be generated", "ইনভয়েস তৈরি করা যায়নি"},
}

func init() {
	for key, texts := range messages {
		_ = message.SetString(English, key, texts[0])
		_ = message.SetString(Bengali, key, texts[1])
	}
}

// Negotiate picks the response language from ?lang= or Accept-Language. English is the default.
func Negotiate(r *http.Request) language.Tag {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			_, idx, _ := matcher.Match(tag)
			return supported[idx]
		}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	return supported[idx]
}

// T returns the message for key in the given language, or key itself when unknown.
func T(tag language.Tag, key string) string {
	if _, ok := messages[key]; !ok {
		return key
	}
	return message.NewPrinter(tag).Sprintf(key)
}

// FormatAmount renders d with grouped digits and the currency word.
func FormatAmount(tag language.Tag, d decimal.Decimal) string {
	p := message.NewPrinter(tag)
	var digits string
	if d.IsInteger() {
		digits = p.Sprint(number.Decimal(d.IntPart()))
	} else {
		digits = p.Sprint(number.Decimal(d.Round(2).InexactFloat64(),
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}
	if isBengali(tag) {
		return digits + " টাকা"
	}
	return "Tk " + digits
}

func isBengali(tag language.Tag) bool {
	base, _ := tag.Base()
	bn, _ := Bengali.Base()
	return base == bn
}

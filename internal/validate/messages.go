package validate

type catalog struct {
	required string
	email    string
	url      string
	icon     string
	minLen   string
	minVal   string
	invalid  string
	badName  string
	unknown  string
	failure  string
}

var catalogs = map[string]catalog{
	"tr": {
		required: "Bu alan gereklidir",
		email:    "Geçerli bir email girin",
		url:      "Geçersiz URL",
		icon:     "Geçersiz ikon",
		minLen:   "En az %s karakter olmalıdır",
		minVal:   "En az %s olmalıdır",
		invalid:  "Geçersiz değer",
		badName:  "Geçersiz alan adı",
		unknown:  "Bilinmeyen alan",
		failure:  "İşlem sırasında bir hata oluştu. Lütfen tekrar deneyin.",
	},
	"en": {
		required: "This field is required",
		email:    "Enter a valid email",
		url:      "Invalid URL",
		icon:     "Invalid icon",
		minLen:   "Must be at least %s characters",
		minVal:   "Must be at least %s",
		invalid:  "Invalid value",
		badName:  "Invalid field name",
		unknown:  "Unknown field",
		failure:  "Something went wrong. Please try again.",
	},
}

func catalogFor(locale string) catalog {
	if c, ok := catalogs[locale]; ok {
		return c
	}
	return catalogs["tr"]
}

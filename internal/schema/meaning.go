package schema

import "strings"

// Meaning is a hint about what a column holds, derived from its name and comment.
type Meaning string

const (
	MeaningNone     Meaning = ""
	MeaningEmail    Meaning = "email"
	MeaningPhone    Meaning = "phone"
	MeaningAddress  Meaning = "address"
	MeaningZipcode  Meaning = "zipcode"
	MeaningName     Meaning = "name"
	MeaningPassword Meaning = "password"
	MeaningURL      Meaning = "url"
	MeaningIP       Meaning = "ip"
	MeaningCountry  Meaning = "country"
	MeaningCity     Meaning = "city"
	MeaningTitle    Meaning = "title"
	MeaningText     Meaning = "text"
	MeaningCode     Meaning = "code"
)

var abbreviations = map[string]Meaning{
	"nm": MeaningName, "name": MeaningName, "fname": MeaningName, "lname": MeaningName,
	"first": MeaningName, "last": MeaningName, "username": MeaningName, "login": MeaningName,
	"email": MeaningEmail, "mail": MeaningEmail,
	"tel": MeaningPhone, "phone": MeaningPhone, "mobile": MeaningPhone, "hp": MeaningPhone, "ph": MeaningPhone, "fax": MeaningPhone,
	"addr": MeaningAddress, "address": MeaningAddress, "street": MeaningAddress, "st": MeaningAddress,
	"zip": MeaningZipcode, "postal": MeaningZipcode, "postcode": MeaningZipcode, "zipcode": MeaningZipcode,
	"pwd": MeaningPassword, "passwd": MeaningPassword, "pw": MeaningPassword, "password": MeaningPassword,
	"url": MeaningURL, "link": MeaningURL, "website": MeaningURL, "homepage": MeaningURL,
	"ip": MeaningIP,
	"country": MeaningCountry,
	"city": MeaningCity, "town": MeaningCity,
	"title": MeaningTitle, "tit": MeaningTitle, "subj": MeaningTitle, "subject": MeaningTitle,
	"desc": MeaningText, "description": MeaningText, "txt": MeaningText, "text": MeaningText,
	"msg": MeaningText, "message": MeaningText, "body": MeaningText, "content": MeaningText, "note": MeaningText,
	"cd": MeaningCode, "code": MeaningCode, "sku": MeaningCode,
}

// commentHints are checked in order; the first keyword found in the comment wins.
var commentHints = []struct {
	keywords []string
	meaning  Meaning
}{
	{[]string{"e-mail", "email", "mail"}, MeaningEmail},
	{[]string{"phone", "mobile", "telephone"}, MeaningPhone},
	{[]string{"address"}, MeaningAddress},
	{[]string{"zip", "postal"}, MeaningZipcode},
	{[]string{"password"}, MeaningPassword},
	{[]string{"url", "link", "website"}, MeaningURL},
	{[]string{"ip address"}, MeaningIP},
	{[]string{"country"}, MeaningCountry},
	{[]string{"city"}, MeaningCity},
	{[]string{"name"}, MeaningName},
	{[]string{"title", "subject"}, MeaningTitle},
	{[]string{"description", "content", "text"}, MeaningText},
}

// AnalyzeMeaning guesses what a column holds. The comment takes priority;
// otherwise the underscore-separated parts of the name are decoded, last
// part first, so that "billing_email" reads as an email.
func AnalyzeMeaning(colName, comment string) Meaning {
	c := strings.ToLower(comment)
	for _, h := range commentHints {
		for _, k := range h.keywords {
			if strings.Contains(c, k) {
				return h.meaning
			}
		}
	}

	parts := strings.Split(strings.ToLower(colName), "_")
	for i := len(parts) - 1; i >= 0; i-- {
		if m, ok := abbreviations[parts[i]]; ok {
			return m
		}
	}
	return MeaningNone
}

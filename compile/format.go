package compile

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-openapi/jsonpointer"
	js "github.com/jsonschema-go/core"
	"golang.org/x/net/idna"
)

// defaultFormats is the §6 format registry. Every entry is vacuously true
// for a document value it doesn't apply to (wrong Kind), matching the rest
// of the compiler's "keyword doesn't apply to this value's type" rule, so
// a schema author combining "type" and "format" never has to worry about
// double-gating.
var defaultFormats = map[string]FormatFunc{
	"color":                 formatColor,
	"hostname":              formatHostname,
	"host-name":             formatHostname,
	"idn-hostname":          formatIDNHostname,
	"ipv4":                  formatIPv4,
	"ip-address":            formatIPv4,
	"ipv6":                  formatIPv6,
	"email":                 formatEmail,
	"idn-email":             formatIDNEmail,
	"uri":                   formatURI,
	"uri-reference":         formatURIReference,
	"uri-template":          formatURITemplate,
	"iri":                   formatURI,
	"iri-reference":         formatURIReference,
	"json-pointer":          formatJSONPointer,
	"relative-json-pointer": formatRelativeJSONPointer,
	"date":                  formatDate,
	"time":                  formatTime,
	"date-time":             formatDateTime,
	"utc-millisec":          formatUTCMillisec,
	"regex":                 formatRegex,
}

func onString(fn func(string) bool) FormatFunc {
	return func(v js.Value) bool {
		if v.Kind() != js.KindString {
			return true
		}
		s, _ := v.AsString()
		return fn(s)
	}
}

var hostLabelRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

func isValidHostname(s string) bool {
	if s == "" || len(s) > 255 {
		return false
	}
	s = strings.TrimSuffix(s, ".")
	for _, label := range strings.Split(s, ".") {
		if !hostLabelRe.MatchString(label) {
			return false
		}
	}
	return true
}

var formatHostname = onString(isValidHostname)

// formatIDNHostname converts a Unicode hostname to its ASCII (punycode)
// form via golang.org/x/net/idna before applying the same label-shape
// check "hostname" uses, rejecting labels that don't survive IDNA
// normalization (e.g. disallowed code points, bidi violations).
var formatIDNHostname = onString(func(s string) bool {
	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return false
	}
	return isValidHostname(ascii)
})

var formatIPv4 = onString(func(s string) bool {
	if strings.Contains(s, ":") {
		return false
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
})

var formatIPv6 = onString(func(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() == nil
})

// formatEmail accepts a bare "local@domain" address, rejecting the
// display-name form ("Name <addr>") that net/mail.ParseAddress otherwise
// tolerates.
var formatEmail = onString(func(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
})

// formatIDNEmail is "email" with the domain part allowed to be a Unicode
// IDN label, validated by round-tripping it through idna.
var formatIDNEmail = onString(func(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if local == "" {
		return false
	}
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return false
	}
	return isValidHostname(ascii)
})

var formatURI = onString(func(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
})

var formatURIReference = onString(func(s string) bool {
	_, err := url.Parse(s)
	return err == nil
})

var uriTemplateExprRe = regexp.MustCompile(`\{[^{}]*\}`)

// formatURITemplate accepts an RFC 6570 URI template: a URI reference
// whose "{...}" expressions are well-formed (no nested or unmatched
// braces), per §6.
var formatURITemplate = onString(func(s string) bool {
	if strings.Count(s, "{") != strings.Count(s, "}") {
		return false
	}
	stripped := uriTemplateExprRe.ReplaceAllString(s, "")
	if strings.ContainsAny(stripped, "{}") {
		return false
	}
	_, err := url.Parse(uriTemplateExprRe.ReplaceAllString(s, "x"))
	return err == nil
})

var formatJSONPointer = onString(func(s string) bool {
	_, err := jsonpointer.New(s)
	return err == nil
})

var relativeJSONPointerRe = regexp.MustCompile(`^(0|[1-9][0-9]*)(#|.*)$`)

// formatRelativeJSONPointer checks the non-negative integer prefix that
// every relative JSON pointer starts with, then — unless the remainder is
// bare "#" — validates the remainder as an absolute JSON pointer.
var formatRelativeJSONPointer = onString(func(s string) bool {
	m := relativeJSONPointerRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	rest := s[len(m[1]):]
	if rest == "" || rest == "#" {
		return true
	}
	return formatJSONPointer(js.NewString(rest))
})

var formatDate = onString(func(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
})

var timeRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?([zZ]|[+-]\d{2}:\d{2})$`)

var formatTime = onString(func(s string) bool {
	return timeRe.MatchString(s)
})

var dateTimeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[tT](\d{2}:\d{2}:\d{2}(?:\.\d+)?)([zZ]|[+-]\d{2}:\d{2})$`)

// formatDateTime accepts RFC 3339 date-time with a case-insensitive "T"
// separator (and "Z" offset), normalizing the separator to uppercase
// before delegating to time.Parse for the actual calendar validation
// (rejecting e.g. month 13 or day 32 that the regex alone wouldn't catch).
var formatDateTime = onString(func(s string) bool {
	m := dateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	normalized := m[1] + "T" + m[2] + strings.ToUpper(m[3])
	_, err := time.Parse("2006-01-02T15:04:05.999999999Z07:00", normalized)
	return err == nil
})

var formatUTCMillisec FormatFunc = func(v js.Value) bool {
	switch v.Kind() {
	case js.KindInteger:
		n, _ := v.AsBigInt()
		return n.Sign() >= 0
	case js.KindFloat:
		f, _ := v.AsFloat()
		return f >= 0
	default:
		return true
	}
}

var formatRegex = onString(func(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
})

var cssColorNames = map[string]bool{
	"black": true, "silver": true, "gray": true, "white": true, "maroon": true,
	"red": true, "purple": true, "fuchsia": true, "green": true, "lime": true,
	"olive": true, "yellow": true, "navy": true, "blue": true, "teal": true,
	"aqua": true, "orange": true, "transparent": true, "currentcolor": true,
	"rebeccapurple": true,
}

var (
	hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColorRe = regexp.MustCompile(`^rgba?\(\s*[\d.%]+\s*,\s*[\d.%]+\s*,\s*[\d.%]+\s*(,\s*[\d.%]+\s*)?\)$`)
	hslColorRe = regexp.MustCompile(`^hsla?\(\s*[\d.]+\s*,\s*[\d.%]+\s*,\s*[\d.%]+\s*(,\s*[\d.%]+\s*)?\)$`)
)

// formatColor accepts CSS color forms: the 17 CSS 2.1 keyword names plus
// transparent, currentcolor and rebeccapurple (case-insensitive), hex
// notation with 3, 4, 6 or 8 digits, and rgb()/rgba()/hsl()/hsla()
// functional notation.
var formatColor = onString(func(s string) bool {
	if cssColorNames[strings.ToLower(s)] {
		return true
	}
	return hexColorRe.MatchString(s) || rgbColorRe.MatchString(s) || hslColorRe.MatchString(s)
})

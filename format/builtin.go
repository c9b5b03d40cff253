package format

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	dateTimeRegex = regexp.MustCompile(`(?i)^(\d{4})-?([0-1]\d)-?([0-3]\d)[t\s]?([0-2]\d:?[0-5]\d:?[0-5]\d|23:59:60|235960)(\.\d+)?(z|[+-]\d{2}:\d{2})?$`)
	dateRegex     = regexp.MustCompile(`^(\d{4})-?([0-1]\d)-?([0-3]\d)$`)
	timeRegex     = regexp.MustCompile(`(?i)^([0-2]\d:?[0-5]\d:?[0-5]\d|23:59:60|235960)(\.\d+)?(z|[+-]\d{2}:\d{2})?$`)
	durationRegex = regexp.MustCompile(`^-?P(?:\d+W)?(?:\d+D)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?$`)

	// HTML5 "valid e-mail address"; deliberately looser than RFC 5322.
	emailRegex = regexp.MustCompile("(?i)^[a-z0-9.!#$%&'*+/=?^_`{|}~-]+" +
		`@[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)*$`)
	hostnameRegex = regexp.MustCompile(`(?i)^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?(?:\.[a-z0-9](?:[-0-9a-z]{0,61}[0-9a-z])?)*$`)
	semverRegex   = regexp.MustCompile(`(?i)^(\d+)\.(\d+)\.(\d+)(?:-([0-9a-z-]+(?:\.[0-9a-z-]+)*))?(?:\+([0-9a-z-]+(?:\.[0-9a-z-]+)*))?$`)
	uriRegex      = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*:\S*$`)
	decimalRegex  = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

	urlLabelRegex = regexp.MustCompile(`(?i)^(?:[a-z\x{00a1}-\x{ffff}0-9_]+-?)*[a-z\x{00a1}-\x{ffff}0-9_]+$`)
	urlTLDRegex   = regexp.MustCompile(`(?i)^[a-z\x{00a1}-\x{ffff}]{2,}$`)
)

var (
	falsyStrings  = map[string]bool{"0": true, "no": true, "n": true, "nope": true, "false": true, "f": true, "off": true}
	truthyStrings = map[string]bool{"1": true, "ok": true, "yes": true, "y": true, "yup": true, "true": true, "t": true, "on": true}
)

func builtins() map[string]Checker {
	return map[string]Checker{
		"date-time":     checkDateTime,
		"date":          checkDate,
		"time":          checkTime,
		"time-duration": checkDuration,
		"duration":      checkDuration,
		"email":         checkEmail,
		"hostname":      checkHostname,
		"ipv4":          checkIPv4,
		"ip-address-v4": checkIPv4,
		"ipv6":          checkIPv6,
		"ip-address-v6": checkIPv6,
		"ip-address":    checkIP,
		"uuid":          checkUUID,
		"uri":           checkURI,
		"url":           checkURL,
		"semver":        checkSemver,
		"byte":          checkByte,
		"decimal":       checkDecimal,
		"pattern":       checkPattern,
		"regex":         checkPattern,
		"boolean":       checkBoolean,
		"password":      func(string) error { return nil },
	}
}

func mismatch(format string) error {
	return errors.New("does not match the " + format + " format")
}

func checkDateTime(s string) error {
	m := dateTimeRegex.FindStringSubmatch(s)
	if m == nil {
		return mismatch("date-time")
	}
	if err := checkCalendar(m[1], m[2], m[3]); err != nil {
		return err
	}
	return checkClock(m[4])
}

func checkDate(s string) error {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return mismatch("date")
	}
	return checkCalendar(m[1], m[2], m[3])
}

func checkTime(s string) error {
	m := timeRegex.FindStringSubmatch(s)
	if m == nil {
		return mismatch("time")
	}
	return checkClock(m[1])
}

func checkCalendar(year, month, day string) error {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 {
		return fmt.Errorf("month %s out of range", month)
	}
	last := time.Date(y, time.Month(mo)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d < 1 || d > last {
		return fmt.Errorf("day %s out of range for %s-%s", day, year, month)
	}
	return nil
}

func checkClock(clock string) error {
	hour, _ := strconv.Atoi(clock[:2])
	if hour > 23 {
		return fmt.Errorf("hour %02d out of range", hour)
	}
	return nil
}

func checkDuration(s string) error {
	upper := strings.ToUpper(s)
	if !durationRegex.MatchString(upper) {
		return mismatch("duration")
	}
	// At least one component must follow "P", and "T" must be followed by one.
	rest := strings.TrimPrefix(strings.TrimPrefix(upper, "-"), "P")
	if rest == "" || rest == "T" || strings.HasSuffix(rest, "T") {
		return mismatch("duration")
	}
	return nil
}

func checkEmail(s string) error {
	if !emailRegex.MatchString(s) || strings.Contains(s, "..") {
		return mismatch("email")
	}
	return nil
}

func checkHostname(s string) error {
	if !hostnameRegex.MatchString(s) {
		return mismatch("hostname")
	}
	return nil
}

func checkIPv4(s string) error {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return mismatch("ipv4")
	}
	return nil
}

func checkIPv6(s string) error {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is6() {
		return mismatch("ipv6")
	}
	return nil
}

func checkIP(s string) error {
	if _, err := netip.ParseAddr(s); err != nil {
		return mismatch("ip-address")
	}
	return nil
}

func checkUUID(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("not a UUID: %w", err)
	}
	return nil
}

func checkURI(s string) error {
	if !uriRegex.MatchString(s) {
		return mismatch("uri")
	}
	return nil
}

// checkURL accepts http, https and ftp URLs whose host is a public IPv4
// address or a domain name with an alphabetic top-level domain.
func checkURL(s string) error {
	if strings.ContainsAny(s, " \t\r\n") {
		return mismatch("url")
	}
	u, err := url.Parse(s)
	if err != nil {
		return mismatch("url")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return mismatch("url")
	}
	if port := u.Port(); port != "" && (len(port) < 2 || len(port) > 5) {
		return mismatch("url")
	}

	host := u.Hostname()
	if addr, err := netip.ParseAddr(host); err == nil {
		if !publicIPv4(addr) {
			return errors.New("url host must be a public IPv4 address or a domain name")
		}
		return nil
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 || !urlTLDRegex.MatchString(labels[len(labels)-1]) {
		return mismatch("url")
	}
	for _, label := range labels[:len(labels)-1] {
		if !urlLabelRegex.MatchString(label) {
			return mismatch("url")
		}
	}
	return nil
}

func publicIPv4(addr netip.Addr) bool {
	if !addr.Is4() || addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() {
		return false
	}
	octets := addr.As4()
	return octets[0] != 0 && octets[0] <= 223 && octets[3] != 0 && octets[3] != 255
}

func checkSemver(s string) error {
	if !semverRegex.MatchString(s) {
		return mismatch("semver")
	}
	return nil
}

func checkByte(s string) error {
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return fmt.Errorf("not base64: %w", err)
	}
	return nil
}

func checkDecimal(s string) error {
	if !decimalRegex.MatchString(strings.TrimSpace(s)) {
		return mismatch("decimal")
	}
	return nil
}

func checkPattern(s string) error {
	if _, err := regexp.Compile(s); err != nil {
		return fmt.Errorf("not a regular expression: %w", err)
	}
	return nil
}

func checkBoolean(s string) error {
	if falsyStrings[s] || truthyStrings[s] {
		return nil
	}
	return mismatch("boolean")
}

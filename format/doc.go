// Package format provides the registry of "format" keyword checkers.
//
// A Checker inspects a string and returns nil when the string is in the
// format, or an error describing why it is not. Checkers are looked up by
// name at validation time, so a format registered after a schema was
// compiled still applies to later validations. Format names that are not
// registered never fail.
//
// # Usage
//
// Register a custom format in the process-wide registry:
//
//	format.Register("my-format", func(s string) error {
//	    if !strings.HasPrefix(s, "my-") {
//	        return errors.New(`must start with "my-"`)
//	    }
//	    return nil
//	})
//
// Or declare it as a CEL expression over the string variable "value":
//
//	checker, err := format.CEL(`value.startsWith("my-")`)
//	if err != nil {
//	    return err
//	}
//	format.Register("my-format", checker)
//
// # Built-in Formats
//
// date-time, date, time, time-duration (alias duration), email, hostname,
// ipv4 (alias ip-address-v4), ipv6 (alias ip-address-v6), ip-address, uuid,
// uri, url, semver, byte, decimal, pattern (alias regex), boolean and
// password are installed in every registry.
//
// # Thread Safety
//
// All operations are thread-safe and can be called concurrently from multiple
// goroutines. The registry uses sync.RWMutex for efficient concurrent access.
package format

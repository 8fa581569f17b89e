// Package sanitizer normalizes user supplied lead data before it is checked and stored.
//
// All functions are idempotent: applying them multiple times produces the same result.
// Invalid input is handled gracefully, typically by returning an empty string rather
// than an error, so callers can decide whether an empty value is acceptable.
//
// Normalization includes:
//   - Free text (names, locations): trim and collapse internal whitespace
//   - Emails: trim and lowercase
//   - Phone numbers: E.164 for machine use (SMS, tel: links); stored values keep what the user typed
package sanitizer

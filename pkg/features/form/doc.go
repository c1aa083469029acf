// Package form provides string field validators and the markup that pairs
// an input with its error message.
//
// A Validator returns nil or a ValidationError whose Message is a message
// key; callers resolve keys to text when rendering. Validators are strict:
// unlike browser constraint validation, an empty string is checked like any
// other value, so MinLength(3, ...) rejects "".
//
// Combinators express rule precedence:
//
//	// first failure wins
//	onChange := form.First(
//	    form.MaxLength(20, "email.too_long"),
//	    form.NotContains("..", "email.double_dot"),
//	)
//
//	// every rule runs, last failure wins
//	onBlur := form.Last(
//	    form.Required("email.required"),
//	    form.Pattern(`^[^\s@]+@[^\s@]+\.[^\s@]+$`, "email.invalid"),
//	)
package form

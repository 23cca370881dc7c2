package expr

import (
	"errors"
	"fmt"
)

// Input caps. These bound the work a single Parse call can do before any
// grammar processing starts; they are not a recursion guard, so hosts
// feeding adversarially nested input should impose their own depth limit.
const (
	// MaxInputLength is the maximum expression string length (1MB).
	MaxInputLength = 1024 * 1024

	// MaxTokens is the maximum number of tokens in one expression.
	MaxTokens = 10000
)

var (
	// ErrInputTooLong is returned when the input exceeds MaxInputLength.
	ErrInputTooLong = errors.New("expression too long")

	// ErrTooManyTokens is returned when the input exceeds MaxTokens.
	ErrTooManyTokens = errors.New("too many tokens in expression")
)

// validateInput checks the raw input length before lexing.
func validateInput(input string) error {
	if len(input) > MaxInputLength {
		return &ParseError{
			Message: fmt.Sprintf("%v: %d bytes (max %d)", ErrInputTooLong, len(input), MaxInputLength),
			Err:     ErrInputTooLong,
		}
	}
	return nil
}

// validateTokens checks the token count before parsing.
func validateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return &ParseError{
			Message: fmt.Sprintf("%v: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens),
			Err:     ErrTooManyTokens,
		}
	}
	return nil
}

// Package assign converts values between types on the operand stack.
package assign

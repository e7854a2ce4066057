// Package primitive converts primitive values on the operand stack.
//
// WidenTo looks up a fixed 8x8 table of widening conversions. Box and Unbox
// move between a primitive and its java/lang wrapper.
package primitive

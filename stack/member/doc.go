// Package member accesses fields, methods and local variables.
//
// Invocation modes are derived from the invoked method. An Invocation can be
// retargeted onto another receiver type, which re-checks that the receiver
// is a subtype of the declaring type:
//
//	inv, _ := member.Invoke(toString)        // virtual on the declaring type
//	super, err := inv.Special(parentType)    // super call
//
// Construction errors are *errors.Error values of kind illegal_argument or
// illegal_state.
package member
